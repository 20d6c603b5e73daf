package store

import (
	"chem.app/api/core/db"
)

type Stores struct {
	q db.DBTX
}

// NewStores binds every store to q, which may be the pool or a transaction.
func NewStores(q db.DBTX) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.q)
}

func (s *Stores) Contributors() ContributorStore {
	return newContributorStore(s.q)
}

func (s *Stores) Transactions() TransactionStore {
	return newTransactionStore(s.q)
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.q)
}

func (s *Stores) Funds() FundStore {
	return newFundStore(s.q)
}
