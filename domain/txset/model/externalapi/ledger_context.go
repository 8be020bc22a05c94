package externalapi

// LedgerContext holds the read-only ledger header values a transaction
// set is built and validated against
type LedgerContext struct {
	PreviousLedgerHash DomainHash
	BaseFee            int64
	MaxTxSetSize       int
	ProtocolVersion    uint32
}

// Clone returns a clone of LedgerContext
func (lc *LedgerContext) Clone() *LedgerContext {
	clone := *lc
	return &clone
}
