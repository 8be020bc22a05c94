package model

import "github.com/kaspanet/gentxset/domain/txset/model/externalapi"

// ValueComparator is a strict total order over validated transaction sets.
// Compare returns a positive number when a is the better candidate, a
// negative number when b is, and 0 only for identical encodings.
type ValueComparator interface {
	Compare(a, b externalapi.GeneralizedTransactionSet, ledgerContext *externalapi.LedgerContext) int
}
