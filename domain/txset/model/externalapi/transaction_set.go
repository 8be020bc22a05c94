package externalapi

// TransactionSetVersion is the discriminant of a GeneralizedTransactionSet
type TransactionSetVersion int32

const (
	// TransactionSetVersionLegacy tags a bare TransactionSetCore without properties
	TransactionSetVersionLegacy TransactionSetVersion = 0

	// TransactionSetVersionGeneralized tags a TransactionSetCore followed by properties
	TransactionSetVersionGeneralized TransactionSetVersion = 1
)

// TransactionSetCore is the list of transactions a ledger applies, kept
// in canonical order (ascending transaction hash)
type TransactionSetCore struct {
	PreviousLedgerHash DomainHash
	Transactions       []*TransactionRef
}

// OperationCount returns the total operation count of the set's transactions
func (core *TransactionSetCore) OperationCount() uint64 {
	total := uint64(0)
	for _, tx := range core.Transactions {
		total += uint64(tx.OperationCount)
	}
	return total
}

// Equal returns whether core equals to other
func (core *TransactionSetCore) Equal(other *TransactionSetCore) bool {
	if core == nil || other == nil {
		return core == other
	}
	if !core.PreviousLedgerHash.Equal(&other.PreviousLedgerHash) {
		return false
	}
	if len(core.Transactions) != len(other.Transactions) {
		return false
	}
	for i, tx := range core.Transactions {
		if !tx.Equal(other.Transactions[i]) {
			return false
		}
	}
	return true
}

// Clone returns a clone of TransactionSetCore
func (core *TransactionSetCore) Clone() *TransactionSetCore {
	transactionsClone := make([]*TransactionRef, len(core.Transactions))
	for i, tx := range core.Transactions {
		transactionsClone[i] = tx.Clone()
	}
	return &TransactionSetCore{
		PreviousLedgerHash: core.PreviousLedgerHash,
		Transactions:       transactionsClone,
	}
}

// GeneralizedTransactionSet is the value consensus agrees on for each ledger.
// It is a closed union over LegacyTransactionSet and TransactionSetV1.
type GeneralizedTransactionSet interface {
	Version() TransactionSetVersion
	Core() *TransactionSetCore
	GroupingProperties() []Property
	Equal(other GeneralizedTransactionSet) bool
	Clone() GeneralizedTransactionSet
	isGeneralizedTransactionSet()
}

// LegacyTransactionSet is a version 0 transaction set. It carries no properties.
type LegacyTransactionSet struct {
	TxSet TransactionSetCore
}

// Version returns TransactionSetVersionLegacy
func (set *LegacyTransactionSet) Version() TransactionSetVersion {
	return TransactionSetVersionLegacy
}

// Core returns the set's transactions
func (set *LegacyTransactionSet) Core() *TransactionSetCore {
	return &set.TxSet
}

// GroupingProperties always returns nil for a legacy set
func (set *LegacyTransactionSet) GroupingProperties() []Property {
	return nil
}

// Equal returns whether set equals to other
func (set *LegacyTransactionSet) Equal(other GeneralizedTransactionSet) bool {
	otherLegacy, ok := other.(*LegacyTransactionSet)
	if !ok {
		return false
	}
	if set == nil || otherLegacy == nil {
		return set == otherLegacy
	}
	return set.TxSet.Equal(&otherLegacy.TxSet)
}

// Clone returns a clone of LegacyTransactionSet
func (set *LegacyTransactionSet) Clone() GeneralizedTransactionSet {
	return &LegacyTransactionSet{TxSet: *set.TxSet.Clone()}
}

func (set *LegacyTransactionSet) isGeneralizedTransactionSet() {}

// TransactionSetV1 is a version 1 transaction set: a TransactionSetCore plus
// the grouping properties that assign fees to its transactions
type TransactionSetV1 struct {
	TxSet      TransactionSetCore
	Properties []Property
}

// Version returns TransactionSetVersionGeneralized
func (set *TransactionSetV1) Version() TransactionSetVersion {
	return TransactionSetVersionGeneralized
}

// Core returns the set's transactions
func (set *TransactionSetV1) Core() *TransactionSetCore {
	return &set.TxSet
}

// GroupingProperties returns the set's properties
func (set *TransactionSetV1) GroupingProperties() []Property {
	return set.Properties
}

// Equal returns whether set equals to other
func (set *TransactionSetV1) Equal(other GeneralizedTransactionSet) bool {
	otherV1, ok := other.(*TransactionSetV1)
	if !ok {
		return false
	}
	if set == nil || otherV1 == nil {
		return set == otherV1
	}
	return set.TxSet.Equal(&otherV1.TxSet) && PropertiesEqual(set.Properties, otherV1.Properties)
}

// Clone returns a clone of TransactionSetV1
func (set *TransactionSetV1) Clone() GeneralizedTransactionSet {
	return &TransactionSetV1{
		TxSet:      *set.TxSet.Clone(),
		Properties: CloneProperties(set.Properties),
	}
}

func (set *TransactionSetV1) isGeneralizedTransactionSet() {}
