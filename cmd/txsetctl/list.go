package main

import (
	"fmt"

	"github.com/kaspanet/gentxset/domain/txset"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
)

func list(cfg *configFlags, engine txset.TxSetEngine, conf *listConfig) error {
	var previousLedgerHash *externalapi.DomainHash
	if !conf.All {
		ledgerContext, err := conf.ledgerContext(cfg.ActiveNetParams)
		if err != nil {
			return err
		}
		previousLedgerHash = &ledgerContext.PreviousLedgerHash
	}

	hashes, err := engine.CandidateHashes(previousLedgerHash)
	if err != nil {
		return err
	}
	for _, hash := range hashes {
		set, err := engine.Candidate(hash)
		if err != nil {
			return err
		}
		core := set.Core()
		fmt.Printf("%s\tversion %d\tprevious ledger %s\t%d transactions\t%d operations\n", hash, set.Version(),
			core.PreviousLedgerHash, len(core.Transactions), core.OperationCount())
	}
	fmt.Printf("%d candidates\n", len(hashes))
	return nil
}
