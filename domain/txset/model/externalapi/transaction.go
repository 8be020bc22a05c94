package externalapi

import (
	"bytes"
	"fmt"
)

// TransactionRef is an opaque transaction as seen by the transaction set
// engine. Only the fields below take part in building, validating and
// comparing sets. Envelope carries the transaction body untouched.
type TransactionRef struct {
	Hash             DomainHash
	SourceAccount    DomainAccountID
	SequenceNumber   int64
	OperationCount   uint32
	MaxFeeBid        int64
	TouchesOrderBook bool
	Envelope         []byte
}

// FeeBid returns the fee this transaction offers to pay
func (tx *TransactionRef) FeeBid() int64 {
	return tx.MaxFeeBid
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = TransactionRef{DomainHash{}, DomainAccountID{}, 0, 0, 0, false, []byte{}}

// Equal returns whether tx equals to other
func (tx *TransactionRef) Equal(other *TransactionRef) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	return tx.Hash.Equal(&other.Hash) &&
		tx.SourceAccount == other.SourceAccount &&
		tx.SequenceNumber == other.SequenceNumber &&
		tx.OperationCount == other.OperationCount &&
		tx.MaxFeeBid == other.MaxFeeBid &&
		tx.TouchesOrderBook == other.TouchesOrderBook &&
		bytes.Equal(tx.Envelope, other.Envelope)
}

// Clone returns a clone of TransactionRef
func (tx *TransactionRef) Clone() *TransactionRef {
	var envelopeClone []byte
	if tx.Envelope != nil {
		envelopeClone = make([]byte, len(tx.Envelope))
		copy(envelopeClone, tx.Envelope)
	}

	return &TransactionRef{
		Hash:             tx.Hash,
		SourceAccount:    tx.SourceAccount,
		SequenceNumber:   tx.SequenceNumber,
		OperationCount:   tx.OperationCount,
		MaxFeeBid:        tx.MaxFeeBid,
		TouchesOrderBook: tx.TouchesOrderBook,
		Envelope:         envelopeClone,
	}
}

func (tx *TransactionRef) String() string {
	return fmt.Sprintf("%s (account %s, seq %d, ops %d, bid %d)",
		tx.Hash, tx.SourceAccount, tx.SequenceNumber, tx.OperationCount, tx.MaxFeeBid)
}
