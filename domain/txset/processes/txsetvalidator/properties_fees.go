package txsetvalidator

import (
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/pkg/errors"
)

// checkPropertyFees assumes checkPropertiesStructure passed
func (v *transactionSetValidator) checkPropertyFees(set externalapi.GeneralizedTransactionSet,
	ledgerContext *externalapi.LedgerContext) error {

	properties := set.GroupingProperties()

	effectiveDefaultFee := ledgerContext.BaseFee
	for _, property := range properties {
		defaultFee, ok := property.(*externalapi.DefaultBaseFeeProperty)
		if !ok {
			continue
		}
		if defaultFee.Fee <= ledgerContext.BaseFee {
			return errors.Wrapf(ruleerrors.ErrDefaultFeeNotAboveLedgerFee, "default base fee %d does not "+
				"exceed the ledger base fee %d", defaultFee.Fee, ledgerContext.BaseFee)
		}
		effectiveDefaultFee = defaultFee.Fee
	}

	transactions := set.Core().Transactions
	for i, property := range properties {
		group, ok := property.(*externalapi.GroupBaseFeeProperty)
		if !ok {
			continue
		}
		if group.Fee <= effectiveDefaultFee {
			return errors.Wrapf(ruleerrors.ErrGroupFeeNotAboveDefault, "group property %d has fee %d, which "+
				"does not exceed the effective default fee %d", i, group.Fee, effectiveDefaultFee)
		}
		for _, index := range group.Indices {
			member := transactions[index]
			if group.Fee > member.FeeBid() {
				return errors.Wrapf(ruleerrors.ErrGroupFeeExceedsMinBid, "group property %d has fee %d, "+
					"which exceeds the bid %d of member %d (%s)", i, group.Fee, member.FeeBid(), index, member.Hash)
			}
		}
	}
	return nil
}
