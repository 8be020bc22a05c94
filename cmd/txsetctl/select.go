package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/kaspanet/gentxset/domain/txset"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/pkg/errors"
)

func selectBest(cfg *configFlags, engine txset.TxSetEngine, conf *selectConfig) error {
	ledgerContext, err := conf.ledgerContext(cfg.ActiveNetParams)
	if err != nil {
		return err
	}
	candidates, err := conf.loadCandidates(engine)
	if err != nil {
		return err
	}

	if conf.AllStored {
		hashes, err := engine.CandidateHashes(&ledgerContext.PreviousLedgerHash)
		if err != nil {
			return err
		}
		for _, hash := range hashes {
			set, err := engine.Candidate(hash)
			if err != nil {
				return err
			}
			candidates = append(candidates, &namedCandidate{name: hash.String(), set: set})
		}
	}
	if len(candidates) == 0 {
		return errors.New("no candidates given. Use --hash, --hex-file or --all-stored")
	}

	sets := make([]externalapi.GeneralizedTransactionSet, len(candidates))
	for i, candidate := range candidates {
		sets[i] = candidate.set
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	result, err := engine.SelectBest(ctx, sets, ledgerContext)
	if result != nil {
		rejectedIndexes := make([]int, 0, len(result.Rejections))
		for index := range result.Rejections {
			rejectedIndexes = append(rejectedIndexes, index)
		}
		sort.Ints(rejectedIndexes)
		for _, index := range rejectedIndexes {
			fmt.Printf("Rejected %s: %s\n", candidates[index].name, result.Rejections[index])
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("Best candidate: %s (%s)\n", candidates[result.BestIndex].name, engine.CandidateHash(result.Best))
	return nil
}
