package main

import (
	"fmt"

	"github.com/kaspanet/gentxset/domain/txset"
	"github.com/pkg/errors"
)

func compare(cfg *configFlags, engine txset.TxSetEngine, conf *compareConfig) error {
	if conf.count() != 2 {
		return errors.Errorf("compare takes exactly 2 candidates, got %d", conf.count())
	}
	ledgerContext, err := conf.ledgerContext(cfg.ActiveNetParams)
	if err != nil {
		return err
	}
	candidates, err := conf.loadCandidates(engine)
	if err != nil {
		return err
	}
	for _, candidate := range candidates {
		err := engine.ValidateCandidate(candidate.set, ledgerContext)
		if err != nil {
			return errors.Wrapf(err, "candidate %s is invalid", candidate.name)
		}
	}

	a, b := candidates[0], candidates[1]
	switch result := engine.CompareCandidates(a.set, b.set, ledgerContext); {
	case result > 0:
		fmt.Printf("%s is preferred over %s\n", a.name, b.name)
	case result < 0:
		fmt.Printf("%s is preferred over %s\n", b.name, a.name)
	default:
		fmt.Printf("%s and %s are identical\n", a.name, b.name)
	}
	return nil
}
