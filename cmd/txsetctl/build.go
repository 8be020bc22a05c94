package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kaspanet/gentxset/domain/txqueue"
	"github.com/kaspanet/gentxset/domain/txset"
)

func build(cfg *configFlags, engine txset.TxSetEngine, conf *buildConfig) error {
	ledgerContext, err := conf.ledgerContext(cfg.ActiveNetParams)
	if err != nil {
		return err
	}

	pool, err := readPoolFile(conf.Pool)
	if err != nil {
		return err
	}

	queueConfig := txqueue.DefaultConfig()
	if conf.MaxPoolSize > 0 {
		queueConfig.MaximumTransactionCount = conf.MaxPoolSize
	}
	queue := txqueue.New(queueConfig)
	for _, transaction := range pool {
		err := queue.Add(transaction)
		if err != nil {
			log.Warnf("Skipping pool transaction %s: %s", transaction.Hash, err)
		}
	}
	log.Infof("Queued %d out of %d pool transactions", queue.Count(), len(pool))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if conf.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, time.Duration(conf.Timeout)*time.Millisecond)
		defer cancelTimeout()
	}

	candidate := engine.BuildCandidate(ctx, ledgerContext, queue.PendingTransactions())
	serialized, err := engine.SerializeCandidate(candidate)
	if err != nil {
		return err
	}

	hash := engine.CandidateHash(candidate)
	if conf.Store {
		hash, err = engine.StageCandidate(candidate)
		if err != nil {
			return err
		}
		log.Infof("Stored candidate %s", hash)
	}

	fmt.Printf("Candidate %s: %d transactions, %d operations, %d properties\n", hash,
		len(candidate.TxSet.Transactions), candidate.TxSet.OperationCount(), len(candidate.Properties))
	fmt.Println(hex.EncodeToString(serialized))
	return nil
}
