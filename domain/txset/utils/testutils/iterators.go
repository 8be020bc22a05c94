package testutils

import (
	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsethashing"
)

type sliceIterator struct {
	transactions []*externalapi.TransactionRef
}

// NewSliceIterator returns an iterator that yields transactions in the
// given order
func NewSliceIterator(transactions ...*externalapi.TransactionRef) model.PendingTransactionIterator {
	return &sliceIterator{transactions: transactions}
}

func (it *sliceIterator) Next() (*externalapi.TransactionRef, bool) {
	if len(it.transactions) == 0 {
		return nil, false
	}
	tx := it.transactions[0]
	it.transactions = it.transactions[1:]
	return tx, true
}

// EndlessIterator yields a never-ending sequence of single-operation
// transactions from distinct accounts and counts how many it yielded
type EndlessIterator struct {
	Yielded int
}

// Next never returns false
func (it *EndlessIterator) Next() (*externalapi.TransactionRef, bool) {
	it.Yielded++
	tx := &externalapi.TransactionRef{
		SequenceNumber:   int64(it.Yielded),
		OperationCount:   1,
		MaxFeeBid:        1000,
		TouchesOrderBook: it.Yielded%2 == 0,
	}
	tx.SourceAccount[0] = byte(it.Yielded)
	tx.SourceAccount[1] = byte(it.Yielded >> 8)
	tx.SourceAccount[2] = byte(it.Yielded >> 16)
	tx.SourceAccount[3] = byte(it.Yielded >> 24)
	tx.Hash = *txsethashing.TransactionHash(tx)
	return tx, true
}
