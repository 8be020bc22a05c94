package candidatebuilder

import (
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/sorters"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsetserialization"
)

// accumulatorState is the state of a candidateAccumulator. Every state can
// move to stateCapped, which is terminal. The order-book states only move
// forward: accumulating, then open, then closed.
type accumulatorState int

const (
	// stateAccumulating means no order-book transaction has been seen yet
	stateAccumulating accumulatorState = iota

	// stateOrderBookOpen means the order-book group has members and
	// still admits more
	stateOrderBookOpen

	// stateOrderBookClosed means an order-book transaction did not fit in
	// the group. The group fee is fixed and order-book transactions are
	// skipped from now on.
	stateOrderBookClosed

	// stateCapped means a transaction did not fit under the set-wide
	// operation cap. Nothing more is consumed.
	stateCapped
)

func (s accumulatorState) String() string {
	switch s {
	case stateAccumulating:
		return "Accumulating"
	case stateOrderBookOpen:
		return "OrderBookOpen"
	case stateOrderBookClosed:
		return "OrderBookClosed"
	case stateCapped:
		return "Capped"
	default:
		return "Unknown"
	}
}

type stepResult int

const (
	stepIncluded stepResult = iota
	stepSkippedAccount
	stepSkippedOrderBook
	stepSkippedUnfit
	stepCapped
)

// candidateAccumulator consumes pending transactions one by one in priority
// order and tracks everything needed to assemble a candidate out of them
type candidateAccumulator struct {
	state                         accumulatorState
	orderBookGroupClosed          bool
	maxTxSetSize                  uint64
	maxTxSetBytes                 uint64
	orderBookGroupOperationsLimit uint64

	included         []*externalapi.TransactionRef
	includedHashes   map[externalapi.DomainHash]struct{}
	includedSequence map[accountSequence]struct{}
	operationCount   uint64
	size             uint64
	rejectedFee      int64

	// the minimum bid among included transactions outside the order-book
	// group, meaningful only when nonOrderBookCount > 0
	nonOrderBookCount      int
	nonOrderBookMinimumBid int64

	orderBookGroup           map[externalapi.DomainHash]*externalapi.TransactionRef
	orderBookOperationCount  uint64
	orderBookGroupFee        int64
	orderBookGroupMinimumBid int64

	skippedAccounts map[externalapi.DomainAccountID]struct{}
}

type accountSequence struct {
	account        externalapi.DomainAccountID
	sequenceNumber int64
}

func newCandidateAccumulator(maxTxSetSize, maxTxSetBytes, orderBookGroupOperationsLimit uint64) *candidateAccumulator {
	return &candidateAccumulator{
		state:                         stateAccumulating,
		maxTxSetSize:                  maxTxSetSize,
		maxTxSetBytes:                 maxTxSetBytes,
		orderBookGroupOperationsLimit: orderBookGroupOperationsLimit,
		includedHashes:                make(map[externalapi.DomainHash]struct{}),
		includedSequence:              make(map[accountSequence]struct{}),
		size:                          txsetserialization.EmptyTransactionSetCoreSize,
		orderBookGroup:                make(map[externalapi.DomainHash]*externalapi.TransactionRef),
		skippedAccounts:               make(map[externalapi.DomainAccountID]struct{}),
	}
}

// step consumes tx. It must not be called once the accumulator is capped.
func (ca *candidateAccumulator) step(tx *externalapi.TransactionRef) stepResult {
	if _, ok := ca.skippedAccounts[tx.SourceAccount]; ok {
		return stepSkippedAccount
	}

	if !ca.canInclude(tx) {
		ca.skipAccount(tx)
		return stepSkippedUnfit
	}

	if ca.operationCount+uint64(tx.OperationCount) > ca.maxTxSetSize {
		ca.rejectedFee = tx.FeeBid()
		ca.state = stateCapped
		return stepCapped
	}

	if tx.TouchesOrderBook {
		if ca.orderBookGroupClosed {
			ca.skipAccount(tx)
			return stepSkippedOrderBook
		}
		if ca.orderBookOperationCount+uint64(tx.OperationCount) > ca.orderBookGroupOperationsLimit {
			ca.orderBookGroupFee = tx.FeeBid()
			ca.orderBookGroupClosed = true
			ca.state = stateOrderBookClosed
			ca.skipAccount(tx)
			return stepSkippedOrderBook
		}

		if len(ca.orderBookGroup) == 0 || tx.FeeBid() < ca.orderBookGroupMinimumBid {
			ca.orderBookGroupMinimumBid = tx.FeeBid()
		}
		ca.orderBookGroup[tx.Hash] = tx
		ca.orderBookOperationCount += uint64(tx.OperationCount)
		ca.state = stateOrderBookOpen
	} else {
		if ca.nonOrderBookCount == 0 || tx.FeeBid() < ca.nonOrderBookMinimumBid {
			ca.nonOrderBookMinimumBid = tx.FeeBid()
		}
		ca.nonOrderBookCount++
	}

	ca.included = append(ca.included, tx)
	ca.includedHashes[tx.Hash] = struct{}{}
	ca.includedSequence[accountSequence{tx.SourceAccount, tx.SequenceNumber}] = struct{}{}
	ca.operationCount += uint64(tx.OperationCount)
	ca.size += txsetserialization.TransactionRefSize(tx)
	return stepIncluded
}

// canInclude returns false for transactions that would break the legacy set
// rules no matter how many operations are left under the cap
func (ca *candidateAccumulator) canInclude(tx *externalapi.TransactionRef) bool {
	if tx.OperationCount == 0 || tx.MaxFeeBid < 0 {
		return false
	}
	if _, ok := ca.includedHashes[tx.Hash]; ok {
		return false
	}
	if _, ok := ca.includedSequence[accountSequence{tx.SourceAccount, tx.SequenceNumber}]; ok {
		return false
	}
	return ca.size+txsetserialization.TransactionRefSize(tx) <= ca.maxTxSetBytes
}

func (ca *candidateAccumulator) skipAccount(tx *externalapi.TransactionRef) {
	ca.skippedAccounts[tx.SourceAccount] = struct{}{}
}

func (ca *candidateAccumulator) isCapped() bool {
	return ca.state == stateCapped
}

// sortedTransactions returns the included transactions in canonical order
func (ca *candidateAccumulator) sortedTransactions() []*externalapi.TransactionRef {
	transactions := make([]*externalapi.TransactionRef, len(ca.included))
	copy(transactions, ca.included)
	sorters.SortTransactionsByHash(transactions)
	return transactions
}

// orderBookGroupIndices returns the ascending positions of the order-book
// group members in transactions
func (ca *candidateAccumulator) orderBookGroupIndices(transactions []*externalapi.TransactionRef) []int32 {
	indices := make([]int32, 0, len(ca.orderBookGroup))
	for i, tx := range transactions {
		if _, ok := ca.orderBookGroup[tx.Hash]; ok {
			indices = append(indices, int32(i))
		}
	}
	return indices
}

// rawProperties returns the properties the accumulated state implies with
// no regard to whether they are valid: a DefaultBaseFee of the rejected bid
// when capped, and a group of every order-book member at the closing bid
// once the group closed.
func (ca *candidateAccumulator) rawProperties(transactions []*externalapi.TransactionRef) []externalapi.Property {
	properties := []externalapi.Property{}
	if ca.isCapped() {
		properties = append(properties, &externalapi.DefaultBaseFeeProperty{Fee: ca.rejectedFee})
	}
	if ca.orderBookGroupClosed {
		properties = append(properties, &externalapi.GroupBaseFeeProperty{
			Fee:     ca.orderBookGroupFee,
			Indices: ca.orderBookGroupIndices(transactions),
		})
	}
	return properties
}

// properties returns the subset of rawProperties that keeps the candidate
// valid against ledgerContext. The default fee is lowered to the minimum bid
// of the transactions it applies to, since the pending order does not
// guarantee that everything consumed before the cap bid at least the
// rejected fee. Transactions of an omitted property pay the fee they would
// pay if that property never existed.
func (ca *candidateAccumulator) properties(transactions []*externalapi.TransactionRef,
	ledgerContext *externalapi.LedgerContext) []externalapi.Property {

	defaultFee := ledgerContext.BaseFee
	if ca.isCapped() {
		defaultFee = ca.rejectedFee
		if ca.nonOrderBookCount > 0 && ca.nonOrderBookMinimumBid < defaultFee {
			defaultFee = ca.nonOrderBookMinimumBid
		}
	}

	includeGroup := ca.orderBookGroupClosed && len(ca.orderBookGroup) > 0 &&
		ca.orderBookGroupFee <= ca.orderBookGroupMinimumBid &&
		ca.orderBookGroupFee > ledgerContext.BaseFee && ca.orderBookGroupFee > defaultFee

	// Without their own group fee the order-book members pay the default
	if !includeGroup && len(ca.orderBookGroup) > 0 && ca.orderBookGroupMinimumBid < defaultFee {
		defaultFee = ca.orderBookGroupMinimumBid
	}

	properties := []externalapi.Property{}
	if ca.isCapped() && defaultFee > ledgerContext.BaseFee {
		properties = append(properties, &externalapi.DefaultBaseFeeProperty{Fee: defaultFee})
	}
	if includeGroup {
		properties = append(properties, &externalapi.GroupBaseFeeProperty{
			Fee:     ca.orderBookGroupFee,
			Indices: ca.orderBookGroupIndices(transactions),
		})
	}
	return properties
}
