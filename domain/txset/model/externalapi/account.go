package externalapi

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainAccountIDSize is the size of the array used to store account IDs.
const DomainAccountIDSize = 32

// DomainAccountID identifies the source account of a transaction
type DomainAccountID [DomainAccountIDSize]byte

// NewDomainAccountIDFromString parses a hex-encoded account ID
func NewDomainAccountIDFromString(accountIDString string) (DomainAccountID, error) {
	var accountID DomainAccountID
	accountIDBytes, err := hex.DecodeString(accountIDString)
	if err != nil {
		return accountID, errors.WithStack(err)
	}
	if len(accountIDBytes) != DomainAccountIDSize {
		return accountID, errors.Errorf("invalid account ID size. Want: %d, got: %d",
			DomainAccountIDSize, len(accountIDBytes))
	}
	copy(accountID[:], accountIDBytes)
	return accountID, nil
}

// String stringifies an account ID.
func (id DomainAccountID) String() string {
	return hex.EncodeToString(id[:])
}
