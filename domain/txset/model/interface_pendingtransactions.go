package model

import "github.com/kaspanet/gentxset/domain/txset/model/externalapi"

// PendingTransactionIterator is a lazy sequence of pending transactions in
// priority order, highest priority first. Transactions of one account are
// yielded in ascending sequence number order.
type PendingTransactionIterator interface {
	// Next returns the next transaction, or false once the sequence is exhausted
	Next() (*externalapi.TransactionRef, bool)
}

// TransactionPrioritizer hands out a fresh PendingTransactionIterator for
// every ledger-close round
type TransactionPrioritizer interface {
	PendingTransactions() PendingTransactionIterator
}
