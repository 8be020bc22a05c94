package main

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsethashing"
	"github.com/pkg/errors"
)

// transactionJSON is the JSON form of a transaction, used both for pool
// files and for decoded candidates. A pool entry with no hash gets the
// hash of its fields.
type transactionJSON struct {
	Hash             string `json:"hash,omitempty"`
	SourceAccount    string `json:"sourceAccount"`
	SequenceNumber   int64  `json:"sequenceNumber"`
	OperationCount   uint32 `json:"operationCount"`
	MaxFeeBid        int64  `json:"maxFeeBid"`
	TouchesOrderBook bool   `json:"touchesOrderBook,omitempty"`
	Envelope         string `json:"envelope,omitempty"`
}

func readPoolFile(path string) ([]*externalapi.TransactionRef, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return parsePool(content)
}

func parsePool(content []byte) ([]*externalapi.TransactionRef, error) {
	var entries []*transactionJSON
	err := json.Unmarshal(content, &entries)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing pool")
	}

	transactions := make([]*externalapi.TransactionRef, len(entries))
	for i, entry := range entries {
		transactions[i], err = entry.toTransaction()
		if err != nil {
			return nil, errors.Wrapf(err, "pool entry %d", i)
		}
	}
	return transactions, nil
}

func (entry *transactionJSON) toTransaction() (*externalapi.TransactionRef, error) {
	sourceAccount, err := externalapi.NewDomainAccountIDFromString(entry.SourceAccount)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sourceAccount")
	}
	envelope, err := hex.DecodeString(entry.Envelope)
	if err != nil {
		return nil, errors.Wrap(err, "invalid envelope")
	}

	transaction := &externalapi.TransactionRef{
		SourceAccount:    sourceAccount,
		SequenceNumber:   entry.SequenceNumber,
		OperationCount:   entry.OperationCount,
		MaxFeeBid:        entry.MaxFeeBid,
		TouchesOrderBook: entry.TouchesOrderBook,
		Envelope:         envelope,
	}

	if entry.Hash == "" {
		transaction.Hash = *txsethashing.TransactionHash(transaction)
		return transaction, nil
	}
	hash, err := externalapi.NewDomainHashFromString(entry.Hash)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hash")
	}
	transaction.Hash = *hash
	return transaction, nil
}

func newTransactionJSON(transaction *externalapi.TransactionRef) *transactionJSON {
	return &transactionJSON{
		Hash:             transaction.Hash.String(),
		SourceAccount:    transaction.SourceAccount.String(),
		SequenceNumber:   transaction.SequenceNumber,
		OperationCount:   transaction.OperationCount,
		MaxFeeBid:        transaction.MaxFeeBid,
		TouchesOrderBook: transaction.TouchesOrderBook,
		Envelope:         hex.EncodeToString(transaction.Envelope),
	}
}

type propertyJSON struct {
	Type    string  `json:"type"`
	Fee     int64   `json:"fee"`
	Indices []int32 `json:"indices,omitempty"`
}

type candidateJSON struct {
	Hash               string             `json:"hash"`
	Version            int32              `json:"version"`
	PreviousLedgerHash string             `json:"previousLedgerHash"`
	OperationCount     uint64             `json:"operationCount"`
	Transactions       []*transactionJSON `json:"transactions"`
	Properties         []*propertyJSON    `json:"properties,omitempty"`
}

func newCandidateJSON(hash *externalapi.DomainHash, set externalapi.GeneralizedTransactionSet) *candidateJSON {
	core := set.Core()
	transactions := make([]*transactionJSON, len(core.Transactions))
	for i, transaction := range core.Transactions {
		transactions[i] = newTransactionJSON(transaction)
	}

	var properties []*propertyJSON
	for _, property := range set.GroupingProperties() {
		switch property := property.(type) {
		case *externalapi.DefaultBaseFeeProperty:
			properties = append(properties, &propertyJSON{Type: property.Type().String(), Fee: property.Fee})
		case *externalapi.GroupBaseFeeProperty:
			properties = append(properties, &propertyJSON{
				Type:    property.Type().String(),
				Fee:     property.Fee,
				Indices: property.Indices,
			})
		}
	}

	return &candidateJSON{
		Hash:               hash.String(),
		Version:            int32(set.Version()),
		PreviousLedgerHash: core.PreviousLedgerHash.String(),
		OperationCount:     core.OperationCount(),
		Transactions:       transactions,
		Properties:         properties,
	}
}
