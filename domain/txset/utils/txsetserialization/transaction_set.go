package txsetserialization

import (
	"bytes"
	"io"

	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/constants"
	"github.com/kaspanet/gentxset/domain/txset/utils/serialization"
	"github.com/pkg/errors"
)

const (
	// hash + account + sequence + operation count + fee bid + order book flag + envelope length
	minTransactionSize = externalapi.DomainHashSize + externalapi.DomainAccountIDSize + 8 + 4 + 8 + 1 + 4

	// tag + fee
	minPropertySize = 4 + 8

	indexSize = 4
)

// SerializeTransactionSet returns the canonical encoding of set
func SerializeTransactionSet(set externalapi.GeneralizedTransactionSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := WriteTransactionSet(buf, set)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTransactionSet writes the canonical encoding of set to w
func WriteTransactionSet(w io.Writer, set externalapi.GeneralizedTransactionSet) error {
	if set == nil {
		return errors.New("cannot serialize a nil transaction set")
	}

	err := serialization.WriteElement(w, int32(set.Version()))
	if err != nil {
		return err
	}

	switch set := set.(type) {
	case *externalapi.LegacyTransactionSet:
		return writeTransactionSetCore(w, &set.TxSet)
	case *externalapi.TransactionSetV1:
		err := writeTransactionSetCore(w, &set.TxSet)
		if err != nil {
			return err
		}
		return writeProperties(w, set.Properties)
	}
	return errors.Errorf("unexpected transaction set type %T", set)
}

func writeTransactionSetCore(w io.Writer, core *externalapi.TransactionSetCore) error {
	err := serialization.WriteElements(w, &core.PreviousLedgerHash, uint32(len(core.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range core.Transactions {
		err := writeTransaction(w, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTransaction(w io.Writer, tx *externalapi.TransactionRef) error {
	err := serialization.WriteElements(w, &tx.Hash, &tx.SourceAccount, tx.SequenceNumber,
		tx.OperationCount, tx.MaxFeeBid, tx.TouchesOrderBook)
	if err != nil {
		return err
	}
	return serialization.WriteVarBytes(w, tx.Envelope)
}

func writeProperties(w io.Writer, properties []externalapi.Property) error {
	err := serialization.WriteElement(w, uint32(len(properties)))
	if err != nil {
		return err
	}
	for _, property := range properties {
		err := serialization.WriteElement(w, int32(property.Type()))
		if err != nil {
			return err
		}
		switch property := property.(type) {
		case *externalapi.DefaultBaseFeeProperty:
			err = serialization.WriteElement(w, property.Fee)
		case *externalapi.GroupBaseFeeProperty:
			err = writeGroupBaseFee(w, property)
		default:
			err = errors.Errorf("unexpected property type %T", property)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeGroupBaseFee(w io.Writer, group *externalapi.GroupBaseFeeProperty) error {
	err := serialization.WriteElements(w, group.Fee, uint32(len(group.Indices)))
	if err != nil {
		return err
	}
	for _, index := range group.Indices {
		err := serialization.WriteElement(w, index)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeTransactionSet decodes a transaction set. It fails, without
// returning a partial value, on truncated input, trailing bytes, and unknown
// discriminants.
func DeserializeTransactionSet(serialized []byte) (externalapi.GeneralizedTransactionSet, error) {
	r := bytes.NewReader(serialized)

	var version int32
	err := serialization.ReadElement(r, &version)
	if err != nil {
		return nil, wrapReadError(err, "transaction set version")
	}

	var set externalapi.GeneralizedTransactionSet
	switch externalapi.TransactionSetVersion(version) {
	case externalapi.TransactionSetVersionLegacy:
		core, err := readTransactionSetCore(r)
		if err != nil {
			return nil, err
		}
		set = &externalapi.LegacyTransactionSet{TxSet: *core}
	case externalapi.TransactionSetVersionGeneralized:
		core, err := readTransactionSetCore(r)
		if err != nil {
			return nil, err
		}
		properties, err := readProperties(r)
		if err != nil {
			return nil, err
		}
		set = &externalapi.TransactionSetV1{TxSet: *core, Properties: properties}
	default:
		return nil, errors.Wrapf(ErrUnknownVersion, "transaction set version %d", version)
	}

	if r.Len() != 0 {
		return nil, errors.Wrapf(ErrTrailingBytes, "%d bytes left after a version %d transaction set",
			r.Len(), version)
	}
	return set, nil
}

func readLength(r *bytes.Reader, minElementSize int, context string) (int, error) {
	var length uint32
	err := serialization.ReadElement(r, &length)
	if err != nil {
		return 0, wrapReadError(err, context+" length")
	}
	if uint64(length)*uint64(minElementSize) > uint64(r.Len()) {
		return 0, errors.Wrapf(ErrLengthTooLarge, "%s length %d doesn't fit in the remaining %d bytes",
			context, length, r.Len())
	}
	return int(length), nil
}

func readTransactionSetCore(r *bytes.Reader) (*externalapi.TransactionSetCore, error) {
	core := &externalapi.TransactionSetCore{}
	err := serialization.ReadElement(r, &core.PreviousLedgerHash)
	if err != nil {
		return nil, wrapReadError(err, "previous ledger hash")
	}

	transactionCount, err := readLength(r, minTransactionSize, "transactions")
	if err != nil {
		return nil, err
	}
	core.Transactions = make([]*externalapi.TransactionRef, transactionCount)
	for i := range core.Transactions {
		tx, err := readTransaction(r)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction %d", i)
		}
		core.Transactions[i] = tx
	}
	return core, nil
}

func readTransaction(r *bytes.Reader) (*externalapi.TransactionRef, error) {
	tx := &externalapi.TransactionRef{}
	err := serialization.ReadElements(r, &tx.Hash, &tx.SourceAccount, &tx.SequenceNumber,
		&tx.OperationCount, &tx.MaxFeeBid, &tx.TouchesOrderBook)
	if err != nil {
		return nil, wrapReadError(err, "transaction")
	}
	tx.Envelope, err = serialization.ReadVarBytes(r, constants.MaxEnvelopeSize)
	if err != nil {
		return nil, wrapReadError(err, "transaction envelope")
	}
	return tx, nil
}

func readProperties(r *bytes.Reader) ([]externalapi.Property, error) {
	propertyCount, err := readLength(r, minPropertySize, "properties")
	if err != nil {
		return nil, err
	}
	properties := make([]externalapi.Property, propertyCount)
	for i := range properties {
		var propertyType int32
		err := serialization.ReadElement(r, &propertyType)
		if err != nil {
			return nil, wrapReadError(err, "property type")
		}

		switch externalapi.PropertyType(propertyType) {
		case externalapi.PropertyTypeDefaultBaseFee:
			property := &externalapi.DefaultBaseFeeProperty{}
			err := serialization.ReadElement(r, &property.Fee)
			if err != nil {
				return nil, wrapReadError(err, "default base fee")
			}
			properties[i] = property
		case externalapi.PropertyTypeGroupBaseFee:
			property, err := readGroupBaseFee(r)
			if err != nil {
				return nil, err
			}
			properties[i] = property
		default:
			return nil, errors.Wrapf(ErrUnknownPropertyType, "property %d has type %d", i, propertyType)
		}
	}
	return properties, nil
}

func readGroupBaseFee(r *bytes.Reader) (*externalapi.GroupBaseFeeProperty, error) {
	group := &externalapi.GroupBaseFeeProperty{}
	err := serialization.ReadElement(r, &group.Fee)
	if err != nil {
		return nil, wrapReadError(err, "group base fee")
	}
	indexCount, err := readLength(r, indexSize, "group indices")
	if err != nil {
		return nil, err
	}
	group.Indices = make([]int32, indexCount)
	for i := range group.Indices {
		err := serialization.ReadElement(r, &group.Indices[i])
		if err != nil {
			return nil, wrapReadError(err, "group index")
		}
	}
	return group, nil
}
