package valuecomparator

import (
	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsethashing"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsetserialization"
)

type valueComparator struct {
	feeResolver model.FeeResolver
}

// New instantiates a new ValueComparator
func New(feeResolver model.FeeResolver) model.ValueComparator {
	return &valueComparator{
		feeResolver: feeResolver,
	}
}

// Compare orders validated sets by, in decreasing precedence: more
// operations, more total fees, a smaller encoded properties field, and a
// greater set hash
func (vc *valueComparator) Compare(a, b externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) int {

	result := compareUint64(a.Core().OperationCount(), b.Core().OperationCount())
	if result != 0 {
		return result
	}

	result = vc.feeResolver.TotalFees(a, ledgerContext).Cmp(vc.feeResolver.TotalFees(b, ledgerContext))
	if result != 0 {
		return result
	}

	result = compareUint64(txsetserialization.PropertiesSize(b), txsetserialization.PropertiesSize(a))
	if result != 0 {
		return result
	}

	return txsethashing.TransactionSetHash(a).Compare(txsethashing.TransactionSetHash(b))
}

func compareUint64(a, b uint64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
