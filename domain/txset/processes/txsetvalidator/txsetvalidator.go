package txsetvalidator

import (
	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/kaspanet/gentxset/infrastructure/logger"
	"github.com/pkg/errors"
)

// transactionSetValidator checks received transaction sets against the
// ledger they were built on top of
type transactionSetValidator struct {
	legacySetChecker model.LegacySetChecker
}

// New instantiates a new TransactionSetValidator
func New(legacySetChecker model.LegacySetChecker) model.TransactionSetValidator {
	return &transactionSetValidator{
		legacySetChecker: legacySetChecker,
	}
}

// ValidateTransactionSet runs every validation rule in a fixed order and
// returns the first violation it finds
func (v *transactionSetValidator) ValidateTransactionSet(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) error {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateTransactionSet")
	defer onEnd()

	err := v.checkPreviousLedgerHash(set, ledgerContext)
	if err != nil {
		return err
	}

	err = v.checkLedgerBaseFee(ledgerContext)
	if err != nil {
		return err
	}

	err = v.checkLegacySet(set, ledgerContext)
	if err != nil {
		return err
	}

	if set.Version() == externalapi.TransactionSetVersionLegacy {
		return nil
	}

	err = v.checkPropertiesStructure(set)
	if err != nil {
		return err
	}

	return v.checkPropertyFees(set, ledgerContext)
}

func (v *transactionSetValidator) checkPreviousLedgerHash(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) error {

	previousLedgerHash := &set.Core().PreviousLedgerHash
	if !previousLedgerHash.Equal(&ledgerContext.PreviousLedgerHash) {
		return errors.Wrapf(ruleerrors.ErrHashMismatch, "the set is built on top of ledger %s "+
			"instead of %s", previousLedgerHash, ledgerContext.PreviousLedgerHash)
	}
	return nil
}

// checkLedgerBaseFee keeps every fee of a valid set non-negative, since
// property fees must be above the ledger base fee
func (v *transactionSetValidator) checkLedgerBaseFee(ledgerContext *externalapi.LedgerContext) error {
	if ledgerContext.BaseFee < 0 {
		return errors.Wrapf(ruleerrors.ErrNegativeLedgerBaseFee, "the ledger base fee is %d",
			ledgerContext.BaseFee)
	}
	return nil
}

func (v *transactionSetValidator) checkLegacySet(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) error {

	err := v.legacySetChecker.CheckLegacySet(set.Core().Transactions, ledgerContext)
	if err == nil {
		return nil
	}
	if errors.Is(err, ruleerrors.ErrInvalidLegacySet) {
		return err
	}
	return errors.Wrapf(ruleerrors.ErrInvalidLegacySet, "%s", err)
}
