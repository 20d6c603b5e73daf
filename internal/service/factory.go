package service

import (
	"chem.app/api/internal/identity"
	"chem.app/api/internal/notify"
	"chem.app/api/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	broker   notify.Broker
	identity identity.Provider
}

func NewServices(stores *store.Stores, txRunner TxRunner, broker notify.Broker, provider identity.Provider) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		broker:   broker,
		identity: provider,
	}
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores.Organizations(), s.stores.Contributors(), s.stores.Transactions(), s.broker)
}

func (s *Services) Contributors() ContributorService {
	return NewContributorService(s.stores.Contributors(), s.stores.Organizations(), s.stores.Transactions(), s.txRunner, s.broker)
}

func (s *Services) Transactions() TransactionService {
	return NewTransactionService(s.stores.Transactions(), s.stores.Organizations(), s.stores.Contributors(), s.stores.Funds(), s.broker)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.txRunner, s.identity)
}
