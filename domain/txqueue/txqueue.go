package txqueue

import (
	"sort"
	"sync"

	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/constants"
	"github.com/pkg/errors"
)

// TransactionQueue holds pending transactions until a transaction set
// includes them. Each account's transactions are kept in ascending sequence
// number order, and only the lowest of them competes on priority.
type TransactionQueue struct {
	config *Config
	lock   sync.RWMutex

	transactionsByHash map[externalapi.DomainHash]*externalapi.TransactionRef
	accountQueues      map[externalapi.DomainAccountID][]*externalapi.TransactionRef
	accountHeads       *transactionsOrderedByPriority
}

// New instantiates a new TransactionQueue
func New(config *Config) *TransactionQueue {
	return &TransactionQueue{
		config:             config,
		transactionsByHash: make(map[externalapi.DomainHash]*externalapi.TransactionRef),
		accountQueues:      make(map[externalapi.DomainAccountID][]*externalapi.TransactionRef),
		accountHeads:       &transactionsOrderedByPriority{},
	}
}

// Add inserts transaction into the queue
func (tq *TransactionQueue) Add(transaction *externalapi.TransactionRef) error {
	tq.lock.Lock()
	defer tq.lock.Unlock()

	err := tq.checkTransaction(transaction)
	if err != nil {
		return err
	}

	accountQueue := tq.accountQueues[transaction.SourceAccount]
	index := sort.Search(len(accountQueue), func(i int) bool {
		return accountQueue[i].SequenceNumber >= transaction.SequenceNumber
	})
	if index < len(accountQueue) && accountQueue[index].SequenceNumber == transaction.SequenceNumber {
		return errors.Wrapf(ErrDuplicateSequenceNumber, "transaction %s claims sequence number %d of "+
			"account %s, already claimed by %s", transaction.Hash, transaction.SequenceNumber,
			transaction.SourceAccount, accountQueue[index].Hash)
	}

	if index == 0 && len(accountQueue) > 0 {
		err := tq.accountHeads.remove(accountQueue[0])
		if err != nil {
			return err
		}
	}
	accountQueue = append(accountQueue[:index],
		append([]*externalapi.TransactionRef{transaction}, accountQueue[index:]...)...)
	tq.accountQueues[transaction.SourceAccount] = accountQueue
	if index == 0 {
		tq.accountHeads.push(transaction)
	}
	tq.transactionsByHash[transaction.Hash] = transaction

	log.Debugf("Added transaction %s to the queue", transaction)
	return nil
}

func (tq *TransactionQueue) checkTransaction(transaction *externalapi.TransactionRef) error {
	if _, ok := tq.transactionsByHash[transaction.Hash]; ok {
		return errors.Wrapf(ErrDuplicateTransaction, "transaction %s", transaction.Hash)
	}
	if transaction.OperationCount == 0 {
		return errors.Wrapf(ErrInvalidTransaction, "transaction %s has no operations", transaction.Hash)
	}
	if transaction.MaxFeeBid < 0 {
		return errors.Wrapf(ErrInvalidTransaction, "transaction %s has a negative fee bid %d",
			transaction.Hash, transaction.MaxFeeBid)
	}
	if len(transaction.Envelope) > constants.MaxEnvelopeSize {
		return errors.Wrapf(ErrInvalidTransaction, "transaction %s has an envelope of %d bytes, which is "+
			"more than the maximum of %d", transaction.Hash, len(transaction.Envelope), constants.MaxEnvelopeSize)
	}
	if len(tq.transactionsByHash) >= tq.config.MaximumTransactionCount {
		return errors.Wrapf(ErrQueueFull, "the queue holds %d transactions", len(tq.transactionsByHash))
	}
	return nil
}

// Remove removes the transaction with the given hash from the queue
func (tq *TransactionQueue) Remove(transactionHash *externalapi.DomainHash) error {
	tq.lock.Lock()
	defer tq.lock.Unlock()

	return tq.remove(transactionHash)
}

// RemoveTransactions removes every transaction of set that is in the queue,
// as happens once set is applied to the ledger
func (tq *TransactionQueue) RemoveTransactions(set externalapi.GeneralizedTransactionSet) error {
	tq.lock.Lock()
	defer tq.lock.Unlock()

	removed := 0
	for _, transaction := range set.Core().Transactions {
		if _, ok := tq.transactionsByHash[transaction.Hash]; !ok {
			continue
		}
		err := tq.remove(&transaction.Hash)
		if err != nil {
			return err
		}
		removed++
	}
	log.Debugf("Removed %d transactions of an applied set from the queue", removed)
	return nil
}

func (tq *TransactionQueue) remove(transactionHash *externalapi.DomainHash) error {
	transaction, ok := tq.transactionsByHash[*transactionHash]
	if !ok {
		return errors.Wrapf(ErrTransactionNotFound, "transaction %s", transactionHash)
	}

	accountQueue := tq.accountQueues[transaction.SourceAccount]
	index := -1
	for i, accountTransaction := range accountQueue {
		if accountTransaction.Hash.Equal(transactionHash) {
			index = i
			break
		}
	}
	if index == -1 {
		return errors.Errorf("transaction %s is missing from the queue of account %s",
			transactionHash, transaction.SourceAccount)
	}

	if index == 0 {
		err := tq.accountHeads.remove(transaction)
		if err != nil {
			return err
		}
	}
	accountQueue = append(accountQueue[:index], accountQueue[index+1:]...)
	if len(accountQueue) == 0 {
		delete(tq.accountQueues, transaction.SourceAccount)
	} else {
		tq.accountQueues[transaction.SourceAccount] = accountQueue
		if index == 0 {
			tq.accountHeads.push(accountQueue[0])
		}
	}
	delete(tq.transactionsByHash, *transactionHash)
	return nil
}

// Count returns the number of transactions in the queue
func (tq *TransactionQueue) Count() int {
	tq.lock.RLock()
	defer tq.lock.RUnlock()

	return len(tq.transactionsByHash)
}

// Has returns whether the queue holds the transaction with the given hash
func (tq *TransactionQueue) Has(transactionHash *externalapi.DomainHash) bool {
	tq.lock.RLock()
	defer tq.lock.RUnlock()

	_, ok := tq.transactionsByHash[*transactionHash]
	return ok
}

// PendingTransactions returns an iterator over a snapshot of the queue.
// Changes to the queue after the call do not affect the iterator.
func (tq *TransactionQueue) PendingTransactions() model.PendingTransactionIterator {
	tq.lock.RLock()
	defer tq.lock.RUnlock()

	accountQueues := make(map[externalapi.DomainAccountID][]*externalapi.TransactionRef, len(tq.accountQueues))
	for account, accountQueue := range tq.accountQueues {
		accountQueueCopy := make([]*externalapi.TransactionRef, len(accountQueue))
		copy(accountQueueCopy, accountQueue)
		accountQueues[account] = accountQueueCopy
	}
	return &pendingTransactionIterator{
		accountQueues: accountQueues,
		accountHeads:  tq.accountHeads.clone(),
	}
}

var _ model.TransactionPrioritizer = (*TransactionQueue)(nil)

type pendingTransactionIterator struct {
	accountQueues map[externalapi.DomainAccountID][]*externalapi.TransactionRef
	accountHeads  *transactionsOrderedByPriority
}

// Next yields the highest priority account head, and replaces it with the
// next transaction of the same account
func (it *pendingTransactionIterator) Next() (*externalapi.TransactionRef, bool) {
	transaction, ok := it.accountHeads.pop()
	if !ok {
		return nil, false
	}
	accountQueue := it.accountQueues[transaction.SourceAccount][1:]
	it.accountQueues[transaction.SourceAccount] = accountQueue
	if len(accountQueue) > 0 {
		it.accountHeads.push(accountQueue[0])
	}
	return transaction, true
}
