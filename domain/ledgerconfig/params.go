package ledgerconfig

import (
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/constants"
	"github.com/pkg/errors"
)

// Params defines a network by the ledger parameters its transaction sets
// are built and validated against
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// BaseFee is the per-operation fee every transaction pays when no
	// property raises it.
	BaseFee int64

	// MaxTxSetSize is the maximum number of operations in a transaction set.
	MaxTxSetSize int

	// ProtocolVersion is the ledger protocol version.
	ProtocolVersion uint32

	// GenesisLedgerHash is the hash of the first ledger of the network. Sets
	// of the first ledger close are built on top of it.
	GenesisLedgerHash *externalapi.DomainHash
}

// LedgerContext returns the ledger context of the ledger that closes on top
// of previousLedgerHash
func (p *Params) LedgerContext(previousLedgerHash *externalapi.DomainHash) *externalapi.LedgerContext {
	return &externalapi.LedgerContext{
		PreviousLedgerHash: *previousLedgerHash,
		BaseFee:            p.BaseFee,
		MaxTxSetSize:       p.MaxTxSetSize,
		ProtocolVersion:    p.ProtocolVersion,
	}
}

// Validate returns an error if p cannot describe a working ledger
func (p *Params) Validate() error {
	if p.BaseFee < 0 {
		return errors.Errorf("%s: base fee %d is negative", p.Name, p.BaseFee)
	}
	if p.MaxTxSetSize <= 0 {
		return errors.Errorf("%s: max tx set size %d is not positive", p.Name, p.MaxTxSetSize)
	}
	if p.ProtocolVersion < constants.GeneralizedTransactionSetProtocolVersion {
		return errors.Errorf("%s: protocol version %d predates generalized transaction sets (version %d)",
			p.Name, p.ProtocolVersion, constants.GeneralizedTransactionSetProtocolVersion)
	}
	return nil
}

// Clone returns a clone of Params
func (p *Params) Clone() *Params {
	clone := *p
	clone.GenesisLedgerHash = p.GenesisLedgerHash.Clone()
	return &clone
}

// MainnetParams defines the ledger parameters for the main network.
var MainnetParams = Params{
	Name:              "mainnet",
	BaseFee:           100,
	MaxTxSetSize:      1000,
	ProtocolVersion:   constants.GeneralizedTransactionSetProtocolVersion,
	GenesisLedgerHash: newHashFromStr("63fe9ab5c3d7c8cbf0ac2c2b8d3e3a7b6c0d1a8f4fda5ad20b24c6c1a1e4b7e9"),
}

// TestnetParams defines the ledger parameters for the test network.
var TestnetParams = Params{
	Name:              "testnet",
	BaseFee:           100,
	MaxTxSetSize:      1000,
	ProtocolVersion:   constants.GeneralizedTransactionSetProtocolVersion,
	GenesisLedgerHash: newHashFromStr("2f1c6a4e92b0d0a93e1f7b4d1c5c8e02a6b9f3d48e7c5a1b0d9e8f7a6b5c4d3e"),
}

// DevnetParams defines the ledger parameters for the development network.
// Its small MaxTxSetSize makes surge pricing easy to trigger.
var DevnetParams = Params{
	Name:              "devnet",
	BaseFee:           10,
	MaxTxSetSize:      200,
	ProtocolVersion:   constants.GeneralizedTransactionSetProtocolVersion,
	GenesisLedgerHash: newHashFromStr("d0e2b5a1c9f8e7d6c5b4a3928170f6e5d4c3b2a19080f7e6d5c4b3a291807f6e"),
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where no network is registered
	// under the requested name.
	ErrUnknownNet = errors.New("unknown network")
)

var registeredNets = make(map[string]*Params)

// Register registers the ledger parameters for a network. This may error
// with ErrDuplicateNet if the network is already registered (either due to
// a previous Register call, or the network being one of the default
// networks).
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return errors.Wrapf(ErrDuplicateNet, "network %s", params.Name)
	}
	registeredNets[params.Name] = params
	return nil
}

// ParamsByName returns the parameters of the network registered under name
func ParamsByName(name string) (*Params, error) {
	params, ok := registeredNets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNet, "network %s", name)
	}
	return params, nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// HashFromString parses a hex-encoded ledger hash
func HashFromString(hexStr string) (*externalapi.DomainHash, error) {
	return externalapi.NewDomainHashFromString(hexStr)
}

// newHashFromStr converts the passed hex string into a DomainHash. It
// panics on an error since it must only be called with hard-coded, and
// therefore known good, hashes.
func newHashFromStr(hexStr string) *externalapi.DomainHash {
	hash, err := HashFromString(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&DevnetParams)
}
