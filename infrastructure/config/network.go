package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/gentxset/domain/ledgerconfig"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet                  bool   `long:"testnet" description:"Use the test network"`
	Devnet                   bool   `long:"devnet" description:"Use the development test network"`
	OverrideLedgerParamsFile string `long:"override-ledger-params-file" description:"Overrides ledger params (allowed only on devnet)"`

	ActiveNetParams *ledgerconfig.Params
}

type overrideLedgerParamsConfig struct {
	BaseFee           *int64  `json:"baseFee"`
	MaxTxSetSize      *int    `json:"maxTxSetSize"`
	ProtocolVersion   *uint32 `json:"protocolVersion"`
	GenesisLedgerHash *string `json:"genesisLedgerHash"`
}

// ResolveNetwork parses the network command line argument and sets ActiveNetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// default net is main net
	networkFlags.ActiveNetParams = &ledgerconfig.MainnetParams
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetParams = &ledgerconfig.TestnetParams
	}
	if networkFlags.Devnet {
		numNets++
		networkFlags.ActiveNetParams = &ledgerconfig.DevnetParams
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, devnet, etc.) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	err := networkFlags.overrideLedgerParams()
	if err != nil {
		return err
	}

	return networkFlags.ActiveNetParams.Validate()
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *ledgerconfig.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideLedgerParams() error {
	if networkFlags.OverrideLedgerParamsFile == "" {
		return nil
	}

	if !networkFlags.Devnet {
		return errors.Errorf("override-ledger-params-file is allowed only when using devnet")
	}

	overrideLedgerParamsFile, err := os.Open(networkFlags.OverrideLedgerParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideLedgerParamsFile.Close()

	decoder := json.NewDecoder(overrideLedgerParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideLedgerParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "error decoding %s", networkFlags.OverrideLedgerParamsFile)
	}

	// The registered devnet params are shared, so the overrides go into a clone
	params := networkFlags.ActiveNetParams.Clone()

	if config.BaseFee != nil {
		params.BaseFee = *config.BaseFee
	}

	if config.MaxTxSetSize != nil {
		params.MaxTxSetSize = *config.MaxTxSetSize
	}

	if config.ProtocolVersion != nil {
		params.ProtocolVersion = *config.ProtocolVersion
	}

	if config.GenesisLedgerHash != nil {
		genesisLedgerHash, err := ledgerconfig.HashFromString(*config.GenesisLedgerHash)
		if err != nil {
			return errors.Wrapf(err, "invalid genesisLedgerHash")
		}
		params.GenesisLedgerHash = genesisLedgerHash
	}

	networkFlags.ActiveNetParams = params
	return nil
}
