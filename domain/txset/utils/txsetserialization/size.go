package txsetserialization

import (
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
)

// TransactionSetCoreSize returns the encoded size, in bytes, of core
func TransactionSetCoreSize(core *externalapi.TransactionSetCore) uint64 {
	size := EmptyTransactionSetCoreSize
	for _, tx := range core.Transactions {
		size += TransactionRefSize(tx)
	}
	return size
}

// EmptyTransactionSetCoreSize is the encoded size, in bytes, of a core with
// no transactions
const EmptyTransactionSetCoreSize = uint64(externalapi.DomainHashSize + 4)

// TransactionRefSize returns the encoded size, in bytes, of tx
func TransactionRefSize(tx *externalapi.TransactionRef) uint64 {
	return minTransactionSize + uint64(len(tx.Envelope))
}

// PropertiesSize returns the encoded size, in bytes, of the properties
// sequence of set. A legacy set has no properties field and its size is 0.
func PropertiesSize(set externalapi.GeneralizedTransactionSet) uint64 {
	if set.Version() == externalapi.TransactionSetVersionLegacy {
		return 0
	}
	size := uint64(4)
	for _, property := range set.GroupingProperties() {
		size += minPropertySize
		if group, ok := property.(*externalapi.GroupBaseFeeProperty); ok {
			size += 4 + indexSize*uint64(len(group.Indices))
		}
	}
	return size
}

// TransactionSetSize returns the full encoded size, in bytes, of set
func TransactionSetSize(set externalapi.GeneralizedTransactionSet) uint64 {
	return 4 + TransactionSetCoreSize(set.Core()) + PropertiesSize(set)
}
