package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kaspanet/gentxset/domain/ledgerconfig"
	"github.com/kaspanet/gentxset/domain/txset"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func printJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return errors.WithStack(encoder.Encode(value))
}

// openEngine opens the candidate database of the active network and
// returns an engine over it. The returned function closes the database.
func openEngine(cfg *configFlags) (txset.TxSetEngine, func(), error) {
	databasePath := cfg.databasePath()
	log.Debugf("Opening the candidate database at %s", databasePath)
	db, err := ldb.NewLevelDB(databasePath, cfg.CacheSizeMiB)
	if err != nil {
		return nil, nil, err
	}
	engine, err := txset.NewFactory().NewTxSetEngine(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	closeDB := func() {
		err := db.Close()
		if err != nil {
			log.Errorf("Error closing the candidate database: %s", err)
		}
	}
	return engine, closeDB, nil
}

func (flags *ledgerFlags) ledgerContext(params *ledgerconfig.Params) (*externalapi.LedgerContext, error) {
	if flags.PreviousLedgerHash == "" {
		return params.LedgerContext(params.GenesisLedgerHash), nil
	}
	previousLedgerHash, err := ledgerconfig.HashFromString(flags.PreviousLedgerHash)
	if err != nil {
		return nil, errors.Wrap(err, "invalid previous ledger hash")
	}
	return params.LedgerContext(previousLedgerHash), nil
}

type namedCandidate struct {
	name string
	set  externalapi.GeneralizedTransactionSet
}

// loadCandidates loads the stored candidates named by --hash and then the
// candidates in the files named by --hex-file
func (flags *candidateFlags) loadCandidates(engine txset.TxSetEngine) ([]*namedCandidate, error) {
	var candidates []*namedCandidate
	for _, hashString := range flags.Hashes {
		hash, err := externalapi.NewDomainHashFromString(hashString)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid candidate hash %s", hashString)
		}
		set, err := engine.Candidate(hash)
		if err != nil {
			return nil, errors.Wrapf(err, "error loading candidate %s", hashString)
		}
		candidates = append(candidates, &namedCandidate{name: hashString, set: set})
	}

	for _, path := range flags.HexFiles {
		set, err := readCandidateFile(engine, path)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, &namedCandidate{name: path, set: set})
	}
	return candidates, nil
}

func readCandidateFile(engine txset.TxSetEngine, path string) (externalapi.GeneralizedTransactionSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	serialized, err := hex.DecodeString(strings.TrimSpace(string(content)))
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not hex-encoded", path)
	}
	set, err := engine.DeserializeCandidate(serialized)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding %s", path)
	}
	return set, nil
}

func (flags *candidateFlags) count() int {
	return len(flags.Hashes) + len(flags.HexFiles)
}
