package model

import "github.com/kaspanet/gentxset/domain/txset/model/externalapi"

// CandidateStore persists candidate transaction sets by their canonical hash
type CandidateStore interface {
	Stage(set externalapi.GeneralizedTransactionSet) (*externalapi.DomainHash, error)
	Get(hash *externalapi.DomainHash) (externalapi.GeneralizedTransactionSet, error)
	Has(hash *externalapi.DomainHash) (bool, error)
	Delete(hash *externalapi.DomainHash) error
	Hashes() ([]*externalapi.DomainHash, error)
	HashesOnLedger(previousLedgerHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error)
}
