package model

import (
	"github.com/holiman/uint256"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
)

// FeeResolver maps a transaction of a validated set to the base fee it pays
type FeeResolver interface {
	EffectiveFee(set externalapi.GeneralizedTransactionSet, ledgerContext *externalapi.LedgerContext,
		transactionIndex int) int64
	TotalFees(set externalapi.GeneralizedTransactionSet, ledgerContext *externalapi.LedgerContext) *uint256.Int
}
