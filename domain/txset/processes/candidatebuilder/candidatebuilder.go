package candidatebuilder

import (
	"context"

	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/constants"
	"github.com/kaspanet/gentxset/infrastructure/logger"
)

type candidateBuilder struct{}

// New instantiates a new CandidateBuilder
func New() model.CandidateBuilder {
	return &candidateBuilder{}
}

// BuildCandidate consumes pending in priority order until it is exhausted,
// the set-wide operation cap is hit, or ctx is done, and returns a valid
// version 1 set of what was accumulated
func (cb *candidateBuilder) BuildCandidate(ctx context.Context, ledgerContext *externalapi.LedgerContext,
	pending model.PendingTransactionIterator) *externalapi.TransactionSetV1 {

	onEnd := logger.LogAndMeasureExecutionTime(log, "BuildCandidate")
	defer onEnd()

	accumulator := cb.accumulate(ctx, ledgerContext, pending)
	return cb.finalize(accumulator, ledgerContext)
}

func (cb *candidateBuilder) accumulate(ctx context.Context, ledgerContext *externalapi.LedgerContext,
	pending model.PendingTransactionIterator) *candidateAccumulator {

	maxTxSetSize := uint64(0)
	if ledgerContext.MaxTxSetSize > 0 {
		maxTxSetSize = uint64(ledgerContext.MaxTxSetSize)
	}
	orderBookGroupOperationsLimit := uint64(constants.OrderBookGroupOperationsLimit(ledgerContext.MaxTxSetSize))
	accumulator := newCandidateAccumulator(maxTxSetSize, constants.MaxTxSetBytes(ledgerContext.MaxTxSetSize),
		orderBookGroupOperationsLimit)

	for {
		select {
		case <-ctx.Done():
			log.Debugf("Candidate building interrupted in state %s: %s", accumulator.state, ctx.Err())
			return accumulator
		default:
		}

		tx, ok := pending.Next()
		if !ok {
			return accumulator
		}

		switch accumulator.step(tx) {
		case stepCapped:
			log.Debugf("Transaction %s with bid %d does not fit under the cap of %d operations",
				tx.Hash, tx.FeeBid(), maxTxSetSize)
			return accumulator
		case stepSkippedOrderBook:
			log.Tracef("Skipping order-book transaction %s of account %s", tx.Hash, tx.SourceAccount)
		case stepSkippedUnfit:
			log.Debugf("Skipping transaction %s of account %s that cannot be part of a valid set",
				tx.Hash, tx.SourceAccount)
		case stepSkippedAccount:
			log.Tracef("Skipping transaction %s of skipped account %s", tx.Hash, tx.SourceAccount)
		}
	}
}

func (cb *candidateBuilder) finalize(accumulator *candidateAccumulator,
	ledgerContext *externalapi.LedgerContext) *externalapi.TransactionSetV1 {

	transactions := accumulator.sortedTransactions()
	properties := accumulator.properties(transactions, ledgerContext)

	log.Debugf("Built a candidate of %d transactions and %d operations with %d properties in state %s",
		len(transactions), accumulator.operationCount, len(properties), accumulator.state)

	return &externalapi.TransactionSetV1{
		TxSet: externalapi.TransactionSetCore{
			PreviousLedgerHash: ledgerContext.PreviousLedgerHash,
			Transactions:       transactions,
		},
		Properties: properties,
	}
}
