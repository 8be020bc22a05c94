package txsetserialization

import (
	"io"

	"github.com/kaspanet/gentxset/domain/txset/utils/serialization"
	"github.com/pkg/errors"
)

// These errors are returned by DeserializeTransactionSet. A peer that sends
// bytes failing with any of them is violating the protocol.
var (
	// ErrTruncated indicates the input ended before the value did
	ErrTruncated = errors.New("ErrTruncated")

	// ErrTrailingBytes indicates extra bytes after a complete value
	ErrTrailingBytes = errors.New("ErrTrailingBytes")

	// ErrUnknownVersion indicates a transaction set discriminant other than 0 or 1
	ErrUnknownVersion = errors.New("ErrUnknownVersion")

	// ErrUnknownPropertyType indicates a property discriminant other than 0 or 1
	ErrUnknownPropertyType = errors.New("ErrUnknownPropertyType")

	// ErrLengthTooLarge indicates a sequence length that can't possibly fit in the remaining input
	ErrLengthTooLarge = errors.New("ErrLengthTooLarge")
)

var malformedErrors = []error{
	ErrTruncated,
	ErrTrailingBytes,
	ErrUnknownVersion,
	ErrUnknownPropertyType,
	ErrLengthTooLarge,
}

// IsMalformedError returns whether err was caused by bytes that don't decode
// into a canonical transaction set.
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	for _, malformedErr := range malformedErrors {
		if errors.Is(err, malformedErr) {
			return true
		}
	}
	return serialization.IsMalformedError(err)
}

func wrapReadError(err error, context string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrapf(ErrTruncated, "failed reading %s", context)
	}
	return errors.Wrapf(err, "failed reading %s", context)
}
