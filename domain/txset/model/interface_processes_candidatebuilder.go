package model

import (
	"context"

	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
)

// CandidateBuilder builds a valid candidate transaction set out of pending
// transactions. Cancelling ctx stops consumption and returns the set
// accumulated so far.
type CandidateBuilder interface {
	BuildCandidate(ctx context.Context, ledgerContext *externalapi.LedgerContext,
		pending PendingTransactionIterator) *externalapi.TransactionSetV1
}
