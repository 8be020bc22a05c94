package constants

const (
	// MinOrderBookGroupOperations is the lowest cap on the number of
	// operations the candidate builder admits into the order-book group.
	MinOrderBookGroupOperations = 101

	// OrderBookGroupDivisor divides the ledger's MaxTxSetSize to get the
	// order-book group cap when that is larger than MinOrderBookGroupOperations.
	OrderBookGroupDivisor = 10

	// MaxBytesPerOperation bounds the encoded size of a transaction set's
	// core: it may not exceed MaxTxSetSize * MaxBytesPerOperation bytes.
	MaxBytesPerOperation = 4096

	// MaxEnvelopeSize is the largest transaction envelope accepted on the wire.
	MaxEnvelopeSize = 1 << 20

	// GeneralizedTransactionSetProtocolVersion is the first protocol version
	// whose ledgers close over generalized (version 1) transaction sets.
	GeneralizedTransactionSetProtocolVersion = 20
)

// OrderBookGroupOperationsLimit returns the cap on operations admitted into
// the order-book group for a ledger with the given MaxTxSetSize.
func OrderBookGroupOperationsLimit(maxTxSetSize int) int {
	limit := maxTxSetSize / OrderBookGroupDivisor
	if limit < MinOrderBookGroupOperations {
		return MinOrderBookGroupOperations
	}
	return limit
}

// MaxTxSetBytes returns the byte limit of an encoded transaction set core
// for a ledger with the given MaxTxSetSize.
func MaxTxSetBytes(maxTxSetSize int) uint64 {
	if maxTxSetSize <= 0 {
		return 0
	}
	return uint64(maxTxSetSize) * MaxBytesPerOperation
}
