package txqueue

import (
	"github.com/pkg/errors"
)

var (
	// ErrDuplicateTransaction indicates a transaction already in the queue
	ErrDuplicateTransaction = errors.New("transaction is already in the queue")

	// ErrDuplicateSequenceNumber indicates another transaction of the same
	// account already claims the sequence number
	ErrDuplicateSequenceNumber = errors.New("sequence number is already claimed")

	// ErrInvalidTransaction indicates a transaction that can never be part
	// of a valid transaction set
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrQueueFull indicates the queue reached Config.MaximumTransactionCount
	ErrQueueFull = errors.New("the transaction queue is full")

	// ErrTransactionNotFound indicates a removal of a transaction that is
	// not in the queue
	ErrTransactionNotFound = errors.New("transaction not found")
)
