package txsetserialization_test

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/testutils"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsetserialization"
	"github.com/pkg/errors"
)

func testSets() []externalapi.GeneralizedTransactionSet {
	ledgerContext := testutils.NewLedgerContext(100, 1000)
	transactions := []*externalapi.TransactionRef{
		testutils.NewTransaction(1, 1, 2, 300, false),
		testutils.NewTransaction(2, 1, 1, 500, true),
		testutils.NewTransaction(3, 7, 5, 1000, true),
	}

	emptyV1 := testutils.NewTransactionSetV1(ledgerContext, nil)
	withProperties := testutils.NewTransactionSetV1(ledgerContext, transactions,
		&externalapi.DefaultBaseFeeProperty{Fee: 200},
		&externalapi.GroupBaseFeeProperty{Fee: 400, Indices: []int32{0, 2}})
	legacy := &externalapi.LegacyTransactionSet{TxSet: *withProperties.TxSet.Clone()}
	emptyLegacy := &externalapi.LegacyTransactionSet{
		TxSet: externalapi.TransactionSetCore{PreviousLedgerHash: ledgerContext.PreviousLedgerHash},
	}

	return []externalapi.GeneralizedTransactionSet{emptyV1, withProperties, legacy, emptyLegacy}
}

func TestTransactionSetRoundTrip(t *testing.T) {
	for i, set := range testSets() {
		serialized, err := txsetserialization.SerializeTransactionSet(set)
		if err != nil {
			t.Fatalf("TestTransactionSetRoundTrip: #%d SerializeTransactionSet: %s", i, err)
		}
		if uint64(len(serialized)) != txsetserialization.TransactionSetSize(set) {
			t.Fatalf("TestTransactionSetRoundTrip: #%d Expected size %d, got %d",
				i, txsetserialization.TransactionSetSize(set), len(serialized))
		}

		deserialized, err := txsetserialization.DeserializeTransactionSet(serialized)
		if err != nil {
			t.Fatalf("TestTransactionSetRoundTrip: #%d DeserializeTransactionSet: %s", i, err)
		}
		if !deserialized.Equal(set) {
			t.Fatalf("TestTransactionSetRoundTrip: #%d\n got: %s want: %s", i,
				spew.Sdump(deserialized), spew.Sdump(set))
		}

		reserialized, err := txsetserialization.SerializeTransactionSet(deserialized)
		if err != nil {
			t.Fatalf("TestTransactionSetRoundTrip: #%d SerializeTransactionSet: %s", i, err)
		}
		if !bytes.Equal(reserialized, serialized) {
			t.Fatalf("TestTransactionSetRoundTrip: #%d encodings differ after a round trip", i)
		}
	}
}

func TestDeserializeTruncated(t *testing.T) {
	for i, set := range testSets() {
		serialized, err := txsetserialization.SerializeTransactionSet(set)
		if err != nil {
			t.Fatalf("TestDeserializeTruncated: #%d SerializeTransactionSet: %s", i, err)
		}
		for length := 0; length < len(serialized); length++ {
			deserialized, err := txsetserialization.DeserializeTransactionSet(serialized[:length])
			if err == nil {
				t.Fatalf("TestDeserializeTruncated: #%d decoding %d of %d bytes unexpectedly succeeded",
					i, length, len(serialized))
			}
			if deserialized != nil {
				t.Fatalf("TestDeserializeTruncated: #%d a failed decode returned a partial value", i)
			}
			if !txsetserialization.IsMalformedError(err) {
				t.Fatalf("TestDeserializeTruncated: #%d Expected a malformed error, got %v", i, err)
			}
		}
	}
}

func TestDeserializeTrailingBytes(t *testing.T) {
	for i, set := range testSets() {
		serialized, err := txsetserialization.SerializeTransactionSet(set)
		if err != nil {
			t.Fatalf("TestDeserializeTrailingBytes: #%d SerializeTransactionSet: %s", i, err)
		}
		_, err = txsetserialization.DeserializeTransactionSet(append(serialized, 0x00))
		if !errors.Is(err, txsetserialization.ErrTrailingBytes) {
			t.Fatalf("TestDeserializeTrailingBytes: #%d Expected ErrTrailingBytes, got %v", i, err)
		}
	}
}

func TestDeserializeLegacyWithProperties(t *testing.T) {
	sets := testSets()
	withProperties := sets[1].(*externalapi.TransactionSetV1)
	serialized, err := txsetserialization.SerializeTransactionSet(withProperties)
	if err != nil {
		t.Fatalf("SerializeTransactionSet: %s", err)
	}

	// Flip the discriminant to 0: a legacy set carries no properties field,
	// so the properties become trailing bytes.
	serialized[3] = 0x00
	_, err = txsetserialization.DeserializeTransactionSet(serialized)
	if !errors.Is(err, txsetserialization.ErrTrailingBytes) {
		t.Fatalf("TestDeserializeLegacyWithProperties: Expected ErrTrailingBytes, got %v", err)
	}
}

func TestDeserializeUnknownDiscriminants(t *testing.T) {
	_, err := txsetserialization.DeserializeTransactionSet([]byte{0x00, 0x00, 0x00, 0x02})
	if !errors.Is(err, txsetserialization.ErrUnknownVersion) {
		t.Fatalf("TestDeserializeUnknownDiscriminants: Expected ErrUnknownVersion, got %v", err)
	}

	ledgerContext := testutils.NewLedgerContext(100, 1000)
	set := testutils.NewTransactionSetV1(ledgerContext, nil, &externalapi.DefaultBaseFeeProperty{Fee: 200})
	serialized, err := txsetserialization.SerializeTransactionSet(set)
	if err != nil {
		t.Fatalf("SerializeTransactionSet: %s", err)
	}
	// version (4) + previous ledger hash (32) + transaction count (4) + property count (4)
	propertyTagOffset := 4 + externalapi.DomainHashSize + 4 + 4
	serialized[propertyTagOffset+3] = 0x05
	_, err = txsetserialization.DeserializeTransactionSet(serialized)
	if !errors.Is(err, txsetserialization.ErrUnknownPropertyType) {
		t.Fatalf("TestDeserializeUnknownDiscriminants: Expected ErrUnknownPropertyType, got %v", err)
	}
}

func TestDeserializeLengthTooLarge(t *testing.T) {
	serialized := make([]byte, 4+externalapi.DomainHashSize)
	serialized = append(serialized, 0xff, 0xff, 0xff, 0xff)
	_, err := txsetserialization.DeserializeTransactionSet(serialized)
	if !errors.Is(err, txsetserialization.ErrLengthTooLarge) {
		t.Fatalf("TestDeserializeLengthTooLarge: Expected ErrLengthTooLarge, got %v", err)
	}
}

func TestPropertiesSize(t *testing.T) {
	for i, set := range testSets() {
		serialized, err := txsetserialization.SerializeTransactionSet(set)
		if err != nil {
			t.Fatalf("TestPropertiesSize: #%d SerializeTransactionSet: %s", i, err)
		}
		expected := uint64(len(serialized)) - 4 - txsetserialization.TransactionSetCoreSize(set.Core())
		if txsetserialization.PropertiesSize(set) != expected {
			t.Fatalf("TestPropertiesSize: #%d Expected %d, got %d", i, expected, txsetserialization.PropertiesSize(set))
		}
	}
}

func TestSerializeNil(t *testing.T) {
	_, err := txsetserialization.SerializeTransactionSet(nil)
	if err == nil {
		t.Fatalf("TestSerializeNil: Expected an error")
	}
}
