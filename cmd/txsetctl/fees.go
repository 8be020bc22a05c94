package main

import (
	"fmt"

	"github.com/kaspanet/gentxset/domain/txset"
	"github.com/pkg/errors"
)

func fees(cfg *configFlags, engine txset.TxSetEngine, conf *feesConfig) error {
	ledgerContext, err := conf.ledgerContext(cfg.ActiveNetParams)
	if err != nil {
		return err
	}
	candidates, err := conf.loadCandidates(engine)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		// Effective fees are only defined for valid sets
		err := engine.ValidateCandidate(candidate.set, ledgerContext)
		if err != nil {
			return errors.Wrapf(err, "candidate %s is invalid", candidate.name)
		}

		fmt.Printf("Candidate %s:\n", candidate.name)
		for i, transaction := range candidate.set.Core().Transactions {
			fmt.Printf("  %s: %d ops, bid %d, base fee %d\n", transaction.Hash, transaction.OperationCount,
				transaction.MaxFeeBid, engine.EffectiveFee(candidate.set, ledgerContext, i))
		}
		fmt.Printf("  Total fees: %s\n", engine.TotalFees(candidate.set, ledgerContext).ToBig())
	}
	return nil
}
