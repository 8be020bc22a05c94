package legacysetchecker

import (
	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/kaspanet/gentxset/domain/txset/utils/constants"
	"github.com/kaspanet/gentxset/domain/txset/utils/sorters"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsetserialization"
	"github.com/pkg/errors"
)

type legacySetChecker struct{}

// New instantiates a new LegacySetChecker
func New() model.LegacySetChecker {
	return &legacySetChecker{}
}

// CheckLegacySet returns an error wrapping ruleerrors.ErrInvalidLegacySet if
// transactions break any of the rules that predate grouping properties
func (lsc *legacySetChecker) CheckLegacySet(transactions []*externalapi.TransactionRef,
	ledgerContext *externalapi.LedgerContext) error {

	err := lsc.checkTransactionsInIsolation(transactions)
	if err != nil {
		return err
	}

	err = lsc.checkCanonicalOrder(transactions)
	if err != nil {
		return err
	}

	err = lsc.checkSourceAccountSequences(transactions)
	if err != nil {
		return err
	}

	return lsc.checkLimits(transactions, ledgerContext)
}

func (lsc *legacySetChecker) checkTransactionsInIsolation(transactions []*externalapi.TransactionRef) error {
	for i, tx := range transactions {
		if tx.OperationCount == 0 {
			return errors.Wrapf(ruleerrors.ErrInvalidLegacySet, "transaction %d (%s) has no operations", i, tx.Hash)
		}
		if tx.MaxFeeBid < 0 {
			return errors.Wrapf(ruleerrors.ErrInvalidLegacySet, "transaction %d (%s) has a negative fee bid %d",
				i, tx.Hash, tx.MaxFeeBid)
		}
	}
	return nil
}

func (lsc *legacySetChecker) checkCanonicalOrder(transactions []*externalapi.TransactionRef) error {
	index := sorters.FirstNonCanonicalIndex(transactions)
	if index == -1 {
		return nil
	}
	if transactions[index-1].Hash.Equal(&transactions[index].Hash) {
		return errors.Wrapf(ruleerrors.ErrInvalidLegacySet, "transaction %s appears more than once",
			transactions[index].Hash)
	}
	return errors.Wrapf(ruleerrors.ErrInvalidLegacySet, "transaction %d (%s) is not ordered after %s",
		index, transactions[index].Hash, transactions[index-1].Hash)
}

// checkSourceAccountSequences rejects two transactions of the same account
// that claim the same sequence number, since at most one of them can apply.
func (lsc *legacySetChecker) checkSourceAccountSequences(transactions []*externalapi.TransactionRef) error {
	type accountSequence struct {
		account        externalapi.DomainAccountID
		sequenceNumber int64
	}
	seen := make(map[accountSequence]int, len(transactions))
	for i, tx := range transactions {
		key := accountSequence{tx.SourceAccount, tx.SequenceNumber}
		if previous, ok := seen[key]; ok {
			return errors.Wrapf(ruleerrors.ErrInvalidLegacySet,
				"transactions %d and %d both spend sequence number %d of account %s",
				previous, i, tx.SequenceNumber, tx.SourceAccount)
		}
		seen[key] = i
	}
	return nil
}

func (lsc *legacySetChecker) checkLimits(transactions []*externalapi.TransactionRef,
	ledgerContext *externalapi.LedgerContext) error {

	core := &externalapi.TransactionSetCore{
		PreviousLedgerHash: ledgerContext.PreviousLedgerHash,
		Transactions:       transactions,
	}
	operationCount := core.OperationCount()
	if operationCount > uint64(ledgerContext.MaxTxSetSize) {
		return errors.Wrapf(ruleerrors.ErrInvalidLegacySet, "the set has %d operations, which is more "+
			"than the ledger's limit of %d", operationCount, ledgerContext.MaxTxSetSize)
	}

	if len(transactions) == 0 {
		return nil
	}
	size := txsetserialization.TransactionSetCoreSize(core)
	maxSize := constants.MaxTxSetBytes(ledgerContext.MaxTxSetSize)
	if size > maxSize {
		return errors.Wrapf(ruleerrors.ErrInvalidLegacySet, "the set is %d bytes long, which is more "+
			"than the ledger's limit of %d", size, maxSize)
	}
	return nil
}
