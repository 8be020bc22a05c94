package txsethashing

import (
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/hashes"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsetserialization"
	"github.com/pkg/errors"
)

// TransactionSetHash returns the canonical hash of set: blake2b over its
// canonical encoding. Sets with identical encodings have identical hashes.
func TransactionSetHash(set externalapi.GeneralizedTransactionSet) *externalapi.DomainHash {
	writer := hashes.NewTransactionSetHashWriter()
	err := txsetserialization.WriteTransactionSet(writer, set)
	if err != nil {
		panic(errors.Wrap(err, "TransactionSetHash() failed. this should never fail for structurally-valid sets"))
	}
	return writer.Finalize()
}
