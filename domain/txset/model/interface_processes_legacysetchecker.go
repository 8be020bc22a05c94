package model

import "github.com/kaspanet/gentxset/domain/txset/model/externalapi"

// LegacySetChecker checks the rules every transaction set had to follow
// before grouping properties existed
type LegacySetChecker interface {
	CheckLegacySet(transactions []*externalapi.TransactionRef, ledgerContext *externalapi.LedgerContext) error
}
