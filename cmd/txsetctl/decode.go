package main

import (
	"github.com/kaspanet/gentxset/domain/txset"
	"github.com/pkg/errors"
)

func decode(engine txset.TxSetEngine, conf *decodeConfig) error {
	candidates, err := conf.loadCandidates(engine)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return errors.New("no candidates given. Use --hash or --hex-file")
	}

	decoded := make([]*candidateJSON, len(candidates))
	for i, candidate := range candidates {
		decoded[i] = newCandidateJSON(engine.CandidateHash(candidate.set), candidate.set)
	}
	return printJSON(decoded)
}
