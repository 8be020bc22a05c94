package candidatestore

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsethashing"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsetserialization"
	"github.com/kaspanet/gentxset/infrastructure/db/database"
	"github.com/pkg/errors"
)

var candidatesBucket = database.MakeBucket([]byte("candidates"))
var ledgerIndexBucket = database.MakeBucket([]byte("candidates-by-ledger"))

// candidateStore persists encoded candidate sets keyed by their canonical
// hash, plus an index of candidates by the ledger they build on
type candidateStore struct {
	db    database.Database
	cache *lru.Cache
}

// New instantiates a new CandidateStore
func New(db database.Database, cacheSize int) (model.CandidateStore, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &candidateStore{
		db:    db,
		cache: cache,
	}, nil
}

// Stage encodes and writes set, and returns its canonical hash. Staging a
// set that is already stored is a no-op.
func (cs *candidateStore) Stage(set externalapi.GeneralizedTransactionSet) (*externalapi.DomainHash, error) {
	serialized, err := txsetserialization.SerializeTransactionSet(set)
	if err != nil {
		return nil, err
	}
	hash := txsethashing.TransactionSetHash(set)

	dbTx, err := cs.db.Begin()
	if err != nil {
		return nil, err
	}
	defer dbTx.RollbackUnlessClosed()

	err = dbTx.Put(cs.candidateKey(hash), serialized)
	if err != nil {
		return nil, err
	}
	err = dbTx.Put(cs.ledgerIndexKey(&set.Core().PreviousLedgerHash, hash), []byte{})
	if err != nil {
		return nil, err
	}
	err = dbTx.Commit()
	if err != nil {
		return nil, err
	}

	cs.cache.Add(*hash, set.Clone())
	log.Debugf("Staged candidate %s on top of ledger %s", hash, set.Core().PreviousLedgerHash)
	return hash, nil
}

// Get returns the set stored under hash. It returns database.ErrNotFound if
// there is none.
func (cs *candidateStore) Get(hash *externalapi.DomainHash) (externalapi.GeneralizedTransactionSet, error) {
	if cached, ok := cs.cache.Get(*hash); ok {
		return cached.(externalapi.GeneralizedTransactionSet).Clone(), nil
	}

	serialized, err := cs.db.Get(cs.candidateKey(hash))
	if err != nil {
		return nil, err
	}
	set, err := txsetserialization.DeserializeTransactionSet(serialized)
	if err != nil {
		return nil, errors.Wrapf(err, "stored candidate %s is corrupted", hash)
	}
	cs.cache.Add(*hash, set.Clone())
	return set, nil
}

// Has returns whether a set is stored under hash
func (cs *candidateStore) Has(hash *externalapi.DomainHash) (bool, error) {
	if cs.cache.Contains(*hash) {
		return true, nil
	}
	return cs.db.Has(cs.candidateKey(hash))
}

// Delete removes the set stored under hash. Deleting a missing set is a
// no-op.
func (cs *candidateStore) Delete(hash *externalapi.DomainHash) error {
	set, err := cs.Get(hash)
	if database.IsNotFoundError(err) {
		return nil
	}
	if err != nil {
		return err
	}

	dbTx, err := cs.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	err = dbTx.Delete(cs.candidateKey(hash))
	if err != nil {
		return err
	}
	err = dbTx.Delete(cs.ledgerIndexKey(&set.Core().PreviousLedgerHash, hash))
	if err != nil {
		return err
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}

	cs.cache.Remove(*hash)
	log.Debugf("Deleted candidate %s", hash)
	return nil
}

// Hashes returns the hashes of every stored set in ascending order
func (cs *candidateStore) Hashes() ([]*externalapi.DomainHash, error) {
	return cs.hashesInBucket(candidatesBucket)
}

// HashesOnLedger returns the hashes of the stored sets built on top of
// previousLedgerHash in ascending order
func (cs *candidateStore) HashesOnLedger(previousLedgerHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	return cs.hashesInBucket(ledgerIndexBucket.Bucket(previousLedgerHash.ByteSlice()))
}

func (cs *candidateStore) hashesInBucket(bucket *database.Bucket) ([]*externalapi.DomainHash, error) {
	cursor, err := cs.db.Cursor(bucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var hashes []*externalapi.DomainHash
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		hash, err := externalapi.NewDomainHashFromByteSlice(key.Suffix())
		if err != nil {
			return nil, errors.Wrapf(err, "malformed candidate key %s", key)
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

func (cs *candidateStore) candidateKey(hash *externalapi.DomainHash) *database.Key {
	return candidatesBucket.Key(hash.ByteSlice())
}

func (cs *candidateStore) ledgerIndexKey(previousLedgerHash, hash *externalapi.DomainHash) *database.Key {
	return ledgerIndexBucket.Bucket(previousLedgerHash.ByteSlice()).Key(hash.ByteSlice())
}
