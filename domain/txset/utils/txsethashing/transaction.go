package txsethashing

import (
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/hashes"
	"github.com/kaspanet/gentxset/domain/txset/utils/serialization"
	"github.com/pkg/errors"
)

// TransactionHash computes the hash of tx out of every field but the hash
// itself. Use it for transactions that arrive without a hash.
func TransactionHash(tx *externalapi.TransactionRef) *externalapi.DomainHash {
	writer := hashes.NewTransactionHashWriter()
	err := serialization.WriteElements(writer, &tx.SourceAccount, tx.SequenceNumber, tx.OperationCount,
		tx.MaxFeeBid, tx.TouchesOrderBook)
	if err != nil {
		panic(errors.Wrap(err, "TransactionHash() failed. this should never fail"))
	}
	err = serialization.WriteVarBytes(writer, tx.Envelope)
	if err != nil {
		panic(errors.Wrap(err, "TransactionHash() failed. this should never fail"))
	}
	return writer.Finalize()
}
