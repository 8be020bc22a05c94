package txset

import (
	"github.com/kaspanet/gentxset/domain/txset/datastructures/candidatestore"
	"github.com/kaspanet/gentxset/domain/txset/processes/candidatebuilder"
	"github.com/kaspanet/gentxset/domain/txset/processes/candidateselector"
	"github.com/kaspanet/gentxset/domain/txset/processes/feeresolver"
	"github.com/kaspanet/gentxset/domain/txset/processes/legacysetchecker"
	"github.com/kaspanet/gentxset/domain/txset/processes/txsetvalidator"
	"github.com/kaspanet/gentxset/domain/txset/processes/valuecomparator"
	"github.com/kaspanet/gentxset/infrastructure/db/database"
)

const defaultCandidateCacheSize = 64

// Factory instantiates new TxSetEngines
type Factory interface {
	NewTxSetEngine(db database.Database) (TxSetEngine, error)

	SetCandidateCacheSize(candidateCacheSize int)
}

type factory struct {
	candidateCacheSize int
}

// NewFactory creates a new TxSetEngine factory
func NewFactory() Factory {
	return &factory{
		candidateCacheSize: defaultCandidateCacheSize,
	}
}

// NewTxSetEngine instantiates a new TxSetEngine that stores its candidates in db
func (f *factory) NewTxSetEngine(db database.Database) (TxSetEngine, error) {
	// Data Structures
	candidateStore, err := candidatestore.New(db, f.candidateCacheSize)
	if err != nil {
		return nil, err
	}

	// Processes
	legacySetChecker := legacysetchecker.New()
	validator := txsetvalidator.New(legacySetChecker)
	feeResolver := feeresolver.New()
	valueComparator := valuecomparator.New(feeResolver)
	candidateBuilder := candidatebuilder.New()
	candidateSelector := candidateselector.New(validator, valueComparator)

	return &txSetEngine{
		validator:         validator,
		feeResolver:       feeResolver,
		valueComparator:   valueComparator,
		candidateBuilder:  candidateBuilder,
		candidateSelector: candidateSelector,
		candidateStore:    candidateStore,

		rejectionCounts: make(map[string]uint64),
	}, nil
}

func (f *factory) SetCandidateCacheSize(candidateCacheSize int) {
	f.candidateCacheSize = candidateCacheSize
}
