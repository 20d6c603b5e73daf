package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"chem.app/api/common/id"
	"chem.app/api/common/logger"
	"chem.app/api/internal/model"
	"chem.app/api/internal/notify"
	"chem.app/api/internal/query"
	"chem.app/api/internal/store"
)

type CreateContributorInput struct {
	FirstName      string
	LastName       string
	OrganizationID *int64
}

type ContributorService interface {
	List(ctx context.Context, params url.Values) (query.Result[model.Contributor], error)
	Get(ctx context.Context, id int64) (*model.Contributor, error)
	Create(ctx context.Context, in CreateContributorInput) (*model.Contributor, error)
	Update(ctx context.Context, id int64, patch model.ContributorPatch) (*model.Contributor, error)
	Delete(ctx context.Context, id int64) (*model.Contributor, error)
	Transactions(ctx context.Context, contributorID int64, params url.Values) (query.Result[model.Transaction], error)
}

type contributorService struct {
	contributorStore store.ContributorStore
	orgStore         store.OrganizationStore
	txStore          store.TransactionStore
	txRunner         TxRunner
	broker           notify.Broker
}

func NewContributorService(
	contributorStore store.ContributorStore,
	orgStore store.OrganizationStore,
	txStore store.TransactionStore,
	txRunner TxRunner,
	broker notify.Broker,
) ContributorService {
	return &contributorService{
		contributorStore: contributorStore,
		orgStore:         orgStore,
		txStore:          txStore,
		txRunner:         txRunner,
		broker:           broker,
	}
}

func (s *contributorService) List(ctx context.Context, params url.Values) (query.Result[model.Contributor], error) {
	c, err := contributorSpec.Parse(params)
	if err != nil {
		return query.Result[model.Contributor]{}, invalidQuery(err)
	}
	res, err := s.contributorStore.List(ctx, c)
	if err != nil {
		return res, fromStore(err, contributorMessages, false)
	}
	return res, nil
}

func (s *contributorService) Get(ctx context.Context, contributorID int64) (*model.Contributor, error) {
	contributor, err := s.contributorStore.GetByID(ctx, contributorID)
	if err != nil {
		return nil, fromStore(err, contributorMessages, false)
	}
	return contributor, nil
}

// Create stores the contributor and, when an organization is given, its
// membership link in one transaction. The organization becomes the
// contributor's primary organization.
func (s *contributorService) Create(ctx context.Context, in CreateContributorInput) (*model.Contributor, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return nil, Validation("firstName and lastName are required")
	}

	if in.OrganizationID != nil {
		if _, err := s.orgStore.GetByID(ctx, *in.OrganizationID); err != nil {
			return nil, fromStore(err, organizationMessages, false)
		}
	}

	contributor := &model.Contributor{
		ID:             id.New(),
		FirstName:      firstName,
		LastName:       lastName,
		OrganizationID: in.OrganizationID,
	}

	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Contributors().Create(ctx, contributor); err != nil {
			return err
		}
		if contributor.OrganizationID == nil {
			return nil
		}
		_, err := stores.Contributors().Link(ctx, *contributor.OrganizationID, contributor.ID)
		return err
	})
	if err != nil {
		if !errors.Is(err, store.ErrConflict) {
			slog.ErrorContext(ctx, "failed to create contributor", "error", err)
		}
		return nil, fromStore(err, contributorMessages, false)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{ContributorID: &contributor.ID, OrganizationID: contributor.OrganizationID})
	slog.InfoContext(ctx, "contributor created")
	publish(ctx, s.broker, notify.EventCreated, "contributor", contributor.ID, contributor.OrganizationID)
	return contributor, nil
}

// Update applies a partial patch. Moving the primary organization also
// links the contributor to it, so the primary organization is always one
// of its linked organizations.
func (s *contributorService) Update(ctx context.Context, contributorID int64, patch model.ContributorPatch) (*model.Contributor, error) {
	if patch.IsEmpty() {
		return nil, Validation("No fields to update")
	}
	var ok bool
	if patch.FirstName, ok = trimName(patch.FirstName); !ok {
		return nil, Validation("firstName must not be empty")
	}
	if patch.LastName, ok = trimName(patch.LastName); !ok {
		return nil, Validation("lastName must not be empty")
	}

	if patch.OrganizationID != nil {
		if _, err := s.orgStore.GetByID(ctx, *patch.OrganizationID); err != nil {
			return nil, fromStore(err, organizationMessages, false)
		}
	}

	var updated *model.Contributor
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		var err error
		updated, err = stores.Contributors().Update(ctx, contributorID, patch)
		if err != nil || patch.OrganizationID == nil {
			return err
		}
		linked, err := stores.Contributors().IsLinked(ctx, *patch.OrganizationID, contributorID)
		if err != nil || linked {
			return err
		}
		_, err = stores.Contributors().Link(ctx, *patch.OrganizationID, contributorID)
		return err
	})
	if err != nil {
		return nil, fromStore(err, contributorMessages, false)
	}

	publish(ctx, s.broker, notify.EventUpdated, "contributor", updated.ID, updated.OrganizationID)
	return updated, nil
}

func (s *contributorService) Delete(ctx context.Context, contributorID int64) (*model.Contributor, error) {
	contributor, err := s.contributorStore.Delete(ctx, contributorID)
	if err != nil {
		return nil, fromStore(err, contributorMessages, true)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{ContributorID: &contributor.ID})
	slog.InfoContext(ctx, "contributor deleted")
	publish(ctx, s.broker, notify.EventDeleted, "contributor", contributor.ID, contributor.OrganizationID)
	return contributor, nil
}

func (s *contributorService) Transactions(ctx context.Context, contributorID int64, params url.Values) (query.Result[model.Transaction], error) {
	c, err := contributorTransactionSpec.Parse(params)
	if err != nil {
		return query.Result[model.Transaction]{}, invalidQuery(err)
	}
	if _, err := s.Get(ctx, contributorID); err != nil {
		return query.Result[model.Transaction]{}, err
	}

	res, err := s.txStore.List(ctx, c.Where("contributorId", contributorID))
	if err != nil {
		return res, fromStore(err, transactionMessages, false)
	}
	return res, nil
}

// trimName trims an optional name. ok is false when a name was given but is blank.
func trimName(name *string) (*string, bool) {
	if name == nil {
		return nil, true
	}
	trimmed := strings.TrimSpace(*name)
	return &trimmed, trimmed != ""
}
