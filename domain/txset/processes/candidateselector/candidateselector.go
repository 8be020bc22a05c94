package candidateselector

import (
	"context"
	"runtime"

	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/kaspanet/gentxset/infrastructure/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrNoValidCandidate is returned by SelectBest when every candidate failed
// validation
var ErrNoValidCandidate = errors.New("no valid candidate")

// SelectionResult is the outcome of SelectBest
type SelectionResult struct {
	// Best is the highest-valued valid candidate
	Best externalapi.GeneralizedTransactionSet

	// BestIndex is the position of Best in the candidates passed to SelectBest
	BestIndex int

	// Rejections maps the position of every invalid candidate to the
	// validation error it failed with
	Rejections map[int]error

	// RejectionCounts counts rejected candidates by rule error kind
	RejectionCounts map[string]int
}

// CandidateSelector picks the best of several competing candidate values
type CandidateSelector struct {
	validator       model.TransactionSetValidator
	valueComparator model.ValueComparator
	maxConcurrency  int
}

// New instantiates a new CandidateSelector
func New(validator model.TransactionSetValidator, valueComparator model.ValueComparator) *CandidateSelector {
	return &CandidateSelector{
		validator:       validator,
		valueComparator: valueComparator,
		maxConcurrency:  runtime.NumCPU(),
	}
}

// SelectBest validates every candidate concurrently and returns the best
// valid one. Candidates are never modified.
func (cs *CandidateSelector) SelectBest(ctx context.Context, candidates []externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) (*SelectionResult, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "SelectBest")
	defer onEnd()

	validationErrors := make([]error, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cs.maxConcurrency)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}
			validationErrors[i] = cs.validator.ValidateTransactionSet(candidate, ledgerContext)
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		return nil, errors.Wrap(err, "candidate selection was interrupted")
	}

	result := &SelectionResult{
		BestIndex:       -1,
		Rejections:      make(map[int]error),
		RejectionCounts: make(map[string]int),
	}
	for i, candidate := range candidates {
		validationErr := validationErrors[i]
		if validationErr != nil {
			kind := ruleerrors.KindOf(validationErr)
			log.Debugf("Rejected candidate %d: %s", i, validationErr)
			result.Rejections[i] = validationErr
			result.RejectionCounts[kind]++
			continue
		}
		if result.Best == nil || cs.valueComparator.Compare(candidate, result.Best, ledgerContext) > 0 {
			result.Best = candidate
			result.BestIndex = i
		}
	}

	if result.Best == nil {
		return result, errors.Wrapf(ErrNoValidCandidate, "all %d candidates were rejected", len(candidates))
	}
	log.Debugf("Selected candidate %d out of %d, %d rejected", result.BestIndex, len(candidates),
		len(result.Rejections))
	return result, nil
}
