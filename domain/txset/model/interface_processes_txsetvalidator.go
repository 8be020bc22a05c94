package model

import "github.com/kaspanet/gentxset/domain/txset/model/externalapi"

// TransactionSetValidator decides whether a received transaction set may
// be voted on. A nil error means the set is valid; any other error wraps
// exactly one ruleerrors.RuleError.
type TransactionSetValidator interface {
	ValidateTransactionSet(set externalapi.GeneralizedTransactionSet, ledgerContext *externalapi.LedgerContext) error
}
