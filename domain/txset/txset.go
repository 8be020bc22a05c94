package txset

import (
	"context"
	"sync"

	"github.com/holiman/uint256"
	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/processes/candidateselector"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsethashing"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsetserialization"
	"github.com/kaspanet/gentxset/infrastructure/logger"
)

// TxSetEngine builds, validates, prices, ranks and stores candidate
// transaction sets
type TxSetEngine interface {
	BuildCandidate(ctx context.Context, ledgerContext *externalapi.LedgerContext,
		pending model.PendingTransactionIterator) *externalapi.TransactionSetV1
	ValidateCandidate(set externalapi.GeneralizedTransactionSet, ledgerContext *externalapi.LedgerContext) error
	EffectiveFee(set externalapi.GeneralizedTransactionSet, ledgerContext *externalapi.LedgerContext,
		transactionIndex int) int64
	TotalFees(set externalapi.GeneralizedTransactionSet, ledgerContext *externalapi.LedgerContext) *uint256.Int
	CompareCandidates(a, b externalapi.GeneralizedTransactionSet, ledgerContext *externalapi.LedgerContext) int
	SelectBest(ctx context.Context, candidates []externalapi.GeneralizedTransactionSet,
		ledgerContext *externalapi.LedgerContext) (*candidateselector.SelectionResult, error)

	SerializeCandidate(set externalapi.GeneralizedTransactionSet) ([]byte, error)
	DeserializeCandidate(serialized []byte) (externalapi.GeneralizedTransactionSet, error)
	CandidateHash(set externalapi.GeneralizedTransactionSet) *externalapi.DomainHash

	StageCandidate(set externalapi.GeneralizedTransactionSet) (*externalapi.DomainHash, error)
	Candidate(hash *externalapi.DomainHash) (externalapi.GeneralizedTransactionSet, error)
	CandidateHashes(previousLedgerHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error)
	DeleteCandidate(hash *externalapi.DomainHash) error

	RejectionCounts() map[string]uint64
}

type txSetEngine struct {
	validator         model.TransactionSetValidator
	feeResolver       model.FeeResolver
	valueComparator   model.ValueComparator
	candidateBuilder  model.CandidateBuilder
	candidateSelector *candidateselector.CandidateSelector
	candidateStore    model.CandidateStore

	rejectionCountsLock sync.Mutex
	rejectionCounts     map[string]uint64
}

// BuildCandidate builds a candidate set out of pending transactions
func (e *txSetEngine) BuildCandidate(ctx context.Context, ledgerContext *externalapi.LedgerContext,
	pending model.PendingTransactionIterator) *externalapi.TransactionSetV1 {

	onEnd := logger.LogAndMeasureExecutionTime(log, "BuildCandidate")
	defer onEnd()

	candidate := e.candidateBuilder.BuildCandidate(ctx, ledgerContext, pending)
	log.Debugf("Built candidate %s with %d transactions and %d properties on top of %s",
		txsethashing.TransactionSetHash(candidate), len(candidate.TxSet.Transactions), len(candidate.Properties),
		&ledgerContext.PreviousLedgerHash)
	return candidate
}

// ValidateCandidate validates set against ledgerContext and counts rejections by kind
func (e *txSetEngine) ValidateCandidate(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) error {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateCandidate")
	defer onEnd()

	err := e.validator.ValidateTransactionSet(set, ledgerContext)
	if err != nil {
		e.countRejection(err)
		log.Debugf("Rejected candidate %s: %s", txsethashing.TransactionSetHash(set), err)
		return err
	}
	log.Debugf("Accepted candidate %s", txsethashing.TransactionSetHash(set))
	return nil
}

func (e *txSetEngine) countRejection(err error) {
	kind := ruleerrors.KindOf(err)
	if kind == "" {
		kind = "Other"
	}

	e.rejectionCountsLock.Lock()
	defer e.rejectionCountsLock.Unlock()
	e.rejectionCounts[kind]++
}

// RejectionCounts returns how many candidates ValidateCandidate rejected, by rule error kind
func (e *txSetEngine) RejectionCounts() map[string]uint64 {
	e.rejectionCountsLock.Lock()
	defer e.rejectionCountsLock.Unlock()

	counts := make(map[string]uint64, len(e.rejectionCounts))
	for kind, count := range e.rejectionCounts {
		counts[kind] = count
	}
	return counts
}

func (e *txSetEngine) EffectiveFee(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext, transactionIndex int) int64 {

	return e.feeResolver.EffectiveFee(set, ledgerContext, transactionIndex)
}

func (e *txSetEngine) TotalFees(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) *uint256.Int {

	return e.feeResolver.TotalFees(set, ledgerContext)
}

func (e *txSetEngine) CompareCandidates(a, b externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) int {

	return e.valueComparator.Compare(a, b, ledgerContext)
}

// SelectBest returns the best valid candidate. Rejections are counted the
// same way ValidateCandidate counts them.
func (e *txSetEngine) SelectBest(ctx context.Context, candidates []externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) (*candidateselector.SelectionResult, error) {

	result, err := e.candidateSelector.SelectBest(ctx, candidates, ledgerContext)
	if result != nil {
		for _, rejection := range result.Rejections {
			e.countRejection(rejection)
		}
	}
	return result, err
}

func (e *txSetEngine) SerializeCandidate(set externalapi.GeneralizedTransactionSet) ([]byte, error) {
	return txsetserialization.SerializeTransactionSet(set)
}

func (e *txSetEngine) DeserializeCandidate(serialized []byte) (externalapi.GeneralizedTransactionSet, error) {
	return txsetserialization.DeserializeTransactionSet(serialized)
}

func (e *txSetEngine) CandidateHash(set externalapi.GeneralizedTransactionSet) *externalapi.DomainHash {
	return txsethashing.TransactionSetHash(set)
}

// StageCandidate persists set and returns its hash
func (e *txSetEngine) StageCandidate(set externalapi.GeneralizedTransactionSet) (*externalapi.DomainHash, error) {
	hash, err := e.candidateStore.Stage(set)
	if err != nil {
		return nil, err
	}
	log.Debugf("Staged candidate %s", hash)
	return hash, nil
}

func (e *txSetEngine) Candidate(hash *externalapi.DomainHash) (externalapi.GeneralizedTransactionSet, error) {
	return e.candidateStore.Get(hash)
}

// CandidateHashes returns the hashes of the stored candidates built on top
// of previousLedgerHash, or of all stored candidates if it is nil
func (e *txSetEngine) CandidateHashes(previousLedgerHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	if previousLedgerHash == nil {
		return e.candidateStore.Hashes()
	}
	return e.candidateStore.HashesOnLedger(previousLedgerHash)
}

func (e *txSetEngine) DeleteCandidate(hash *externalapi.DomainHash) error {
	return e.candidateStore.Delete(hash)
}
