package main

import (
	"fmt"

	"github.com/kaspanet/gentxset/domain/txset"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/pkg/errors"
)

func validate(cfg *configFlags, engine txset.TxSetEngine, conf *validateConfig) error {
	ledgerContext, err := conf.ledgerContext(cfg.ActiveNetParams)
	if err != nil {
		return err
	}
	candidates, err := conf.loadCandidates(engine)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return errors.New("no candidates given. Use --hash or --hex-file")
	}

	invalidCount := 0
	for _, candidate := range candidates {
		err := engine.ValidateCandidate(candidate.set, ledgerContext)
		if err != nil {
			invalidCount++
			fmt.Printf("%s: invalid (%s): %s\n", candidate.name, ruleerrors.KindOf(err), err)
			continue
		}
		fmt.Printf("%s: valid\n", candidate.name)
	}

	if invalidCount > 0 {
		return errors.Errorf("%d out of %d candidates are invalid", invalidCount, len(candidates))
	}
	return nil
}
