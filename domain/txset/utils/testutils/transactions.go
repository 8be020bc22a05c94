package testutils

import (
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/sorters"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsethashing"
)

// PreviousLedgerHash is the previous ledger hash used by NewLedgerContext
var PreviousLedgerHash = externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{
	0x4a, 0x5e, 0x1e, 0x4b, 0xaa, 0xb8, 0x9f, 0x3a,
	0x32, 0x51, 0x8a, 0x88, 0xc3, 0x1b, 0xc8, 0x7f,
	0x61, 0x8f, 0x76, 0x67, 0x3e, 0x2c, 0xc7, 0x7a,
	0xb2, 0x12, 0x7b, 0x7a, 0xfd, 0xed, 0xa3, 0x3b,
})

// NewLedgerContext returns a LedgerContext on top of PreviousLedgerHash
func NewLedgerContext(baseFee int64, maxTxSetSize int) *externalapi.LedgerContext {
	return &externalapi.LedgerContext{
		PreviousLedgerHash: *PreviousLedgerHash,
		BaseFee:            baseFee,
		MaxTxSetSize:       maxTxSetSize,
		ProtocolVersion:    20,
	}
}

// AccountID returns an account ID whose first byte is b
func AccountID(b byte) externalapi.DomainAccountID {
	return externalapi.DomainAccountID{b}
}

// NewTransaction returns a transaction whose hash is derived from its fields,
// so that equal arguments always produce the same hash.
func NewTransaction(account byte, sequenceNumber int64, operationCount uint32, maxFeeBid int64,
	touchesOrderBook bool) *externalapi.TransactionRef {

	tx := &externalapi.TransactionRef{
		SourceAccount:    AccountID(account),
		SequenceNumber:   sequenceNumber,
		OperationCount:   operationCount,
		MaxFeeBid:        maxFeeBid,
		TouchesOrderBook: touchesOrderBook,
		Envelope:         []byte{account, byte(sequenceNumber)},
	}

	tx.Hash = *txsethashing.TransactionHash(tx)
	return tx
}

// SortedCopy returns a copy of transactions in canonical hash order
func SortedCopy(transactions []*externalapi.TransactionRef) []*externalapi.TransactionRef {
	sorted := make([]*externalapi.TransactionRef, len(transactions))
	copy(sorted, transactions)
	sorters.SortTransactionsByHash(sorted)
	return sorted
}

// NewTransactionSetV1 returns a version 1 set over ledgerContext holding
// transactions in canonical order and the given properties
func NewTransactionSetV1(ledgerContext *externalapi.LedgerContext, transactions []*externalapi.TransactionRef,
	properties ...externalapi.Property) *externalapi.TransactionSetV1 {

	if properties == nil {
		properties = []externalapi.Property{}
	}
	return &externalapi.TransactionSetV1{
		TxSet: externalapi.TransactionSetCore{
			PreviousLedgerHash: ledgerContext.PreviousLedgerHash,
			Transactions:       SortedCopy(transactions),
		},
		Properties: properties,
	}
}

// IndexOf returns the position of tx in set's transactions, or -1
func IndexOf(set externalapi.GeneralizedTransactionSet, tx *externalapi.TransactionRef) int32 {
	for i, setTx := range set.Core().Transactions {
		if setTx.Hash.Equal(&tx.Hash) {
			return int32(i)
		}
	}
	return -1
}
