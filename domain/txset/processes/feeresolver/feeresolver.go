package feeresolver

import (
	"sort"

	"github.com/holiman/uint256"
	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/pkg/errors"
)

type feeResolver struct{}

// New instantiates a new FeeResolver
func New() model.FeeResolver {
	return &feeResolver{}
}

// EffectiveFee returns the base fee the transaction at transactionIndex pays:
// the fee of the group containing it if any, otherwise the DefaultBaseFee if
// one is present, otherwise the ledger base fee. set must be valid.
// EffectiveFee panics if transactionIndex is out of range.
func (fr *feeResolver) EffectiveFee(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext, transactionIndex int) int64 {

	transactionCount := len(set.Core().Transactions)
	if transactionIndex < 0 || transactionIndex >= transactionCount {
		panic(errors.Errorf("transaction index %d is out of range for a set of %d transactions",
			transactionIndex, transactionCount))
	}

	fee := ledgerContext.BaseFee
	for _, property := range set.GroupingProperties() {
		switch property := property.(type) {
		case *externalapi.GroupBaseFeeProperty:
			if groupContains(property, int32(transactionIndex)) {
				return property.Fee
			}
		case *externalapi.DefaultBaseFeeProperty:
			fee = property.Fee
		}
	}
	return fee
}

// TotalFees returns the sum of EffectiveFee over every transaction in set
func (fr *feeResolver) TotalFees(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) *uint256.Int {

	defaultFee := ledgerContext.BaseFee
	total := uint256.NewInt(0)
	groupedCount := uint64(0)
	for _, property := range set.GroupingProperties() {
		switch property := property.(type) {
		case *externalapi.GroupBaseFeeProperty:
			groupTotal := feeToUint256(property.Fee)
			groupTotal.Mul(groupTotal, uint256.NewInt(uint64(len(property.Indices))))
			total.Add(total, groupTotal)
			groupedCount += uint64(len(property.Indices))
		case *externalapi.DefaultBaseFeeProperty:
			defaultFee = property.Fee
		}
	}

	ungroupedCount := uint64(len(set.Core().Transactions)) - groupedCount
	defaultTotal := feeToUint256(defaultFee)
	defaultTotal.Mul(defaultTotal, uint256.NewInt(ungroupedCount))
	return total.Add(total, defaultTotal)
}

// groupContains relies on the group's indices being strictly ascending
func groupContains(group *externalapi.GroupBaseFeeProperty, transactionIndex int32) bool {
	position := sort.Search(len(group.Indices), func(i int) bool {
		return group.Indices[i] >= transactionIndex
	})
	return position < len(group.Indices) && group.Indices[position] == transactionIndex
}

func feeToUint256(fee int64) *uint256.Int {
	if fee < 0 {
		panic(errors.Errorf("fee %d is negative", fee))
	}
	return uint256.NewInt(uint64(fee))
}
