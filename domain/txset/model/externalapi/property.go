package externalapi

import "fmt"

// PropertyType is the discriminant of a transaction set Property
type PropertyType int32

const (
	// PropertyTypeDefaultBaseFee tags a DefaultBaseFeeProperty
	PropertyTypeDefaultBaseFee PropertyType = 0

	// PropertyTypeGroupBaseFee tags a GroupBaseFeeProperty
	PropertyTypeGroupBaseFee PropertyType = 1
)

func (pt PropertyType) String() string {
	switch pt {
	case PropertyTypeDefaultBaseFee:
		return "DefaultBaseFee"
	case PropertyTypeGroupBaseFee:
		return "GroupBaseFee"
	default:
		return fmt.Sprintf("PropertyType(%d)", int32(pt))
	}
}

// Property is a grouping property attached to a generalized transaction set.
// The only implementations are DefaultBaseFeeProperty and GroupBaseFeeProperty.
type Property interface {
	Type() PropertyType
	Equal(other Property) bool
	Clone() Property
	isProperty()
}

// DefaultBaseFeeProperty raises the base fee of every transaction that is
// not a member of a group above the ledger's base fee
type DefaultBaseFeeProperty struct {
	Fee int64
}

// Type returns PropertyTypeDefaultBaseFee
func (p *DefaultBaseFeeProperty) Type() PropertyType {
	return PropertyTypeDefaultBaseFee
}

// Equal returns whether p equals to other
func (p *DefaultBaseFeeProperty) Equal(other Property) bool {
	otherDefault, ok := other.(*DefaultBaseFeeProperty)
	if !ok {
		return false
	}
	if p == nil || otherDefault == nil {
		return p == otherDefault
	}
	return p.Fee == otherDefault.Fee
}

// Clone returns a clone of DefaultBaseFeeProperty
func (p *DefaultBaseFeeProperty) Clone() Property {
	return &DefaultBaseFeeProperty{Fee: p.Fee}
}

func (p *DefaultBaseFeeProperty) isProperty() {}

func (p *DefaultBaseFeeProperty) String() string {
	return fmt.Sprintf("DefaultBaseFee(%d)", p.Fee)
}

// GroupBaseFeeProperty assigns its own base fee to the transactions at
// Indices. Indices point into the set's transaction slice and never copy
// transaction data.
type GroupBaseFeeProperty struct {
	Fee     int64
	Indices []int32
}

// Type returns PropertyTypeGroupBaseFee
func (p *GroupBaseFeeProperty) Type() PropertyType {
	return PropertyTypeGroupBaseFee
}

// Equal returns whether p equals to other
func (p *GroupBaseFeeProperty) Equal(other Property) bool {
	otherGroup, ok := other.(*GroupBaseFeeProperty)
	if !ok {
		return false
	}
	if p == nil || otherGroup == nil {
		return p == otherGroup
	}
	if p.Fee != otherGroup.Fee || len(p.Indices) != len(otherGroup.Indices) {
		return false
	}
	for i, index := range p.Indices {
		if otherGroup.Indices[i] != index {
			return false
		}
	}
	return true
}

// Clone returns a clone of GroupBaseFeeProperty
func (p *GroupBaseFeeProperty) Clone() Property {
	indicesClone := make([]int32, len(p.Indices))
	copy(indicesClone, p.Indices)
	return &GroupBaseFeeProperty{Fee: p.Fee, Indices: indicesClone}
}

func (p *GroupBaseFeeProperty) isProperty() {}

func (p *GroupBaseFeeProperty) String() string {
	return fmt.Sprintf("GroupBaseFee(%d, %v)", p.Fee, p.Indices)
}

// CloneProperties returns a deep clone of the given properties slice
func CloneProperties(properties []Property) []Property {
	if properties == nil {
		return nil
	}
	clone := make([]Property, len(properties))
	for i, property := range properties {
		clone[i] = property.Clone()
	}
	return clone
}

// PropertiesEqual returns whether the given property slices are equal.
func PropertiesEqual(a, b []Property) bool {
	if len(a) != len(b) {
		return false
	}
	for i, property := range a {
		if !property.Equal(b[i]) {
			return false
		}
	}
	return true
}
