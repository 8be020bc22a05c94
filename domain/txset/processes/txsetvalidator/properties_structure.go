package txsetvalidator

import (
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/pkg/errors"
)

// checkPropertiesStructure checks everything about the properties that does
// not depend on fees: at most one default fee, disjoint groups, and
// non-empty, ascending, in-bounds group indices
func (v *transactionSetValidator) checkPropertiesStructure(set externalapi.GeneralizedTransactionSet) error {
	properties := set.GroupingProperties()

	err := v.checkSingleDefaultFee(properties)
	if err != nil {
		return err
	}

	err = v.checkGroupsAreDisjoint(properties)
	if err != nil {
		return err
	}

	return v.checkGroupIndices(properties, len(set.Core().Transactions))
}

func (v *transactionSetValidator) checkSingleDefaultFee(properties []externalapi.Property) error {
	firstDefaultFee := -1
	for i, property := range properties {
		if _, ok := property.(*externalapi.DefaultBaseFeeProperty); !ok {
			continue
		}
		if firstDefaultFee != -1 {
			return errors.Wrapf(ruleerrors.ErrDuplicateDefaultFeeProperty, "properties %d and %d "+
				"are both DefaultBaseFee", firstDefaultFee, i)
		}
		firstDefaultFee = i
	}
	return nil
}

// checkGroupsAreDisjoint makes sure no index is referenced by two different
// groups. An index repeated within a single group is left to
// checkGroupIndices.
func (v *transactionSetValidator) checkGroupsAreDisjoint(properties []externalapi.Property) error {
	groupOfIndex := make(map[int32]int)
	for i, property := range properties {
		group, ok := property.(*externalapi.GroupBaseFeeProperty)
		if !ok {
			continue
		}
		for _, index := range group.Indices {
			firstGroup, exists := groupOfIndex[index]
			if !exists {
				groupOfIndex[index] = i
				continue
			}
			if firstGroup != i {
				return ruleerrors.NewErrOverlappingGroups(index, firstGroup, i)
			}
		}
	}
	return nil
}

func (v *transactionSetValidator) checkGroupIndices(properties []externalapi.Property, transactionCount int) error {
	for i, property := range properties {
		group, ok := property.(*externalapi.GroupBaseFeeProperty)
		if !ok {
			continue
		}
		if len(group.Indices) == 0 {
			return errors.Wrapf(ruleerrors.ErrEmptyGroup, "group property %d has no members", i)
		}
		for j, index := range group.Indices {
			if index < 0 || int(index) >= transactionCount {
				return errors.Wrapf(ruleerrors.ErrIndexOutOfBounds, "group property %d references "+
					"transaction %d, but the set has %d transactions", i, index, transactionCount)
			}
			if j > 0 && index <= group.Indices[j-1] {
				return errors.Wrapf(ruleerrors.ErrIndicesNotAscending, "index %d of group property %d "+
					"is %d, which does not follow %d", j, i, index, group.Indices[j-1])
			}
		}
	}
	return nil
}
