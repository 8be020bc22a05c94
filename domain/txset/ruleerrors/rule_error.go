package ruleerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrHashMismatch indicates the set was built on top of a different
	// ledger than the one it is validated against.
	ErrHashMismatch = newRuleError("ErrHashMismatch")

	// ErrNegativeLedgerBaseFee indicates the set is validated against a
	// ledger whose base fee is negative.
	ErrNegativeLedgerBaseFee = newRuleError("ErrNegativeLedgerBaseFee")

	// ErrInvalidLegacySet indicates the set's transactions are not a valid
	// legacy set: they are not in canonical hash order, contain duplicates,
	// or exceed the ledger's operation or byte limits.
	ErrInvalidLegacySet = newRuleError("ErrInvalidLegacySet")

	// ErrDuplicateDefaultFeeProperty indicates the set carries more than one
	// DefaultBaseFee property.
	ErrDuplicateDefaultFeeProperty = newRuleError("ErrDuplicateDefaultFeeProperty")

	// ErrOverlappingGroups indicates a transaction is a member of more than
	// one group.
	ErrOverlappingGroups = newRuleError("ErrOverlappingGroups")

	// ErrIndexOutOfBounds indicates a group references a position outside
	// of the set's transactions.
	ErrIndexOutOfBounds = newRuleError("ErrIndexOutOfBounds")

	// ErrIndicesNotAscending indicates a group's indices are not strictly
	// ascending.
	ErrIndicesNotAscending = newRuleError("ErrIndicesNotAscending")

	// ErrEmptyGroup indicates a group with no members.
	ErrEmptyGroup = newRuleError("ErrEmptyGroup")

	// ErrDefaultFeeNotAboveLedgerFee indicates a DefaultBaseFee property that
	// does not raise the ledger's base fee.
	ErrDefaultFeeNotAboveLedgerFee = newRuleError("ErrDefaultFeeNotAboveLedgerFee")

	// ErrGroupFeeNotAboveDefault indicates a group whose fee does not exceed
	// the effective default fee.
	ErrGroupFeeNotAboveDefault = newRuleError("ErrGroupFeeNotAboveDefault")

	// ErrGroupFeeExceedsMinBid indicates a group whose fee is higher than
	// what one of its members bid.
	ErrGroupFeeExceedsMinBid = newRuleError("ErrGroupFeeExceedsMinBid")
)

// AllRuleErrors lists every RuleError kind, in the order the validator
// checks them.
var AllRuleErrors = []RuleError{
	ErrHashMismatch,
	ErrNegativeLedgerBaseFee,
	ErrInvalidLegacySet,
	ErrDuplicateDefaultFeeProperty,
	ErrOverlappingGroups,
	ErrIndexOutOfBounds,
	ErrIndicesNotAscending,
	ErrEmptyGroup,
	ErrDefaultFeeNotAboveLedgerFee,
	ErrGroupFeeNotAboveDefault,
	ErrGroupFeeExceedsMinBid,
}

// RuleError identifies a rule violation. It is used to indicate that
// validation of a transaction set failed due to one of the validation
// rules. The caller can use errors.As or errors.Is to determine if a
// failure was specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Is reports whether target is the sentinel of the same rule, so that
// errors.Is(err, ErrOverlappingGroups) matches errors that carry details.
func (e RuleError) Is(target error) bool {
	targetRuleError, ok := target.(RuleError)
	if !ok {
		return false
	}
	return targetRuleError.message == e.message && targetRuleError.inner == nil
}

// Kind returns the name of the violated rule, e.g. "ErrOverlappingGroups".
// It is stable and suitable as a metric or log label.
func (e RuleError) Kind() string {
	return e.message
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// KindOf returns the kind of the RuleError wrapped in err, or an empty
// string if err is not a rule violation.
func KindOf(err error) string {
	var ruleErr RuleError
	if !errors.As(err, &ruleErr) {
		return ""
	}
	return ruleErr.Kind()
}

// ErrOverlappingGroupsDetails describes the transaction found in two groups
type ErrOverlappingGroupsDetails struct {
	TransactionIndex int32
	FirstGroup       int
	SecondGroup      int
}

func (e ErrOverlappingGroupsDetails) Error() string {
	return fmt.Sprintf("transaction %d is a member of both property %d and property %d",
		e.TransactionIndex, e.FirstGroup, e.SecondGroup)
}

// NewErrOverlappingGroups creates a new ErrOverlappingGroupsDetails error wrapped in a RuleError
func NewErrOverlappingGroups(transactionIndex int32, firstGroup, secondGroup int) error {
	return errors.WithStack(RuleError{
		message: "ErrOverlappingGroups",
		inner:   ErrOverlappingGroupsDetails{transactionIndex, firstGroup, secondGroup},
	})
}
