package txqueue

import (
	"sort"

	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/pkg/errors"
)

// transactionsOrderedByPriority is a set of transactions ordered by
// descending priority, highest first
type transactionsOrderedByPriority struct {
	slice []*externalapi.TransactionRef
}

// hasHigherPriority returns whether a should be yielded before b: the higher
// fee bid first, then the fewer operations, then the lower hash
func hasHigherPriority(a, b *externalapi.TransactionRef) bool {
	if a.FeeBid() != b.FeeBid() {
		return a.FeeBid() > b.FeeBid()
	}
	if a.OperationCount != b.OperationCount {
		return a.OperationCount < b.OperationCount
	}
	return a.Hash.Less(&b.Hash)
}

// push inserts a transaction into the set, placing it in the correct place
// to preserve order
func (totp *transactionsOrderedByPriority) push(transaction *externalapi.TransactionRef) {
	index := totp.findTransactionIndex(transaction)
	totp.slice = append(totp.slice[:index],
		append([]*externalapi.TransactionRef{transaction}, totp.slice[index:]...)...)
}

// remove removes the given transaction from the set. Returns an error if
// the transaction does not exist in the set.
func (totp *transactionsOrderedByPriority) remove(transaction *externalapi.TransactionRef) error {
	index := totp.findTransactionIndex(transaction)
	if index == len(totp.slice) || !totp.slice[index].Hash.Equal(&transaction.Hash) {
		return errors.Wrapf(ErrTransactionNotFound, "couldn't find %s in the priority order", transaction.Hash)
	}
	totp.slice = append(totp.slice[:index], totp.slice[index+1:]...)
	return nil
}

// pop removes and returns the highest priority transaction
func (totp *transactionsOrderedByPriority) pop() (*externalapi.TransactionRef, bool) {
	if len(totp.slice) == 0 {
		return nil, false
	}
	transaction := totp.slice[0]
	totp.slice = totp.slice[1:]
	return transaction, true
}

func (totp *transactionsOrderedByPriority) len() int {
	return len(totp.slice)
}

func (totp *transactionsOrderedByPriority) clone() *transactionsOrderedByPriority {
	slice := make([]*externalapi.TransactionRef, len(totp.slice))
	copy(slice, totp.slice)
	return &transactionsOrderedByPriority{slice: slice}
}

func (totp *transactionsOrderedByPriority) findTransactionIndex(transaction *externalapi.TransactionRef) int {
	return sort.Search(len(totp.slice), func(i int) bool {
		return !hasHigherPriority(totp.slice[i], transaction)
	})
}
