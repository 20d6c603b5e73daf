package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"chem.app/api/common/id"
	"chem.app/api/common/logger"
	"chem.app/api/internal/model"
	"chem.app/api/internal/notify"
	"chem.app/api/internal/query"
	"chem.app/api/internal/store"
)

type CreateOrganizationInput struct {
	Name        string
	Description *string
	Type        *model.OrganizationType
	Restriction *model.Restriction
	Units       *decimal.Decimal
	Amount      *decimal.Decimal
}

type OrganizationService interface {
	List(ctx context.Context, params url.Values) (query.Result[model.Organization], error)
	Get(ctx context.Context, id int64) (*model.Organization, error)
	Create(ctx context.Context, in CreateOrganizationInput) (*model.Organization, error)
	Update(ctx context.Context, id int64, patch model.OrganizationPatch) (*model.Organization, error)
	Delete(ctx context.Context, id int64) (*model.Organization, error)
	// Transactions lists the organization's transactions.
	Transactions(ctx context.Context, orgID int64, params url.Values) (query.Result[model.Transaction], error)
	// Contributors lists contributors linked to the organization.
	Contributors(ctx context.Context, orgID int64, params url.Values) (query.Result[model.Contributor], error)
	AddContributor(ctx context.Context, orgID, contributorID int64) (*model.OrganizationContributor, error)
}

type organizationService struct {
	orgStore         store.OrganizationStore
	contributorStore store.ContributorStore
	txStore          store.TransactionStore
	broker           notify.Broker
}

func NewOrganizationService(
	orgStore store.OrganizationStore,
	contributorStore store.ContributorStore,
	txStore store.TransactionStore,
	broker notify.Broker,
) OrganizationService {
	return &organizationService{
		orgStore:         orgStore,
		contributorStore: contributorStore,
		txStore:          txStore,
		broker:           broker,
	}
}

func (s *organizationService) List(ctx context.Context, params url.Values) (query.Result[model.Organization], error) {
	c, err := organizationSpec.Parse(params)
	if err != nil {
		return query.Result[model.Organization]{}, invalidQuery(err)
	}
	res, err := s.orgStore.List(ctx, c)
	if err != nil {
		return res, fromStore(err, organizationMessages, false)
	}
	return res, nil
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		return nil, fromStore(err, organizationMessages, false)
	}
	return org, nil
}

func (s *organizationService) Create(ctx context.Context, in CreateOrganizationInput) (*model.Organization, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Validation("Organization name is required")
	}

	org := &model.Organization{
		ID:          id.New(),
		Name:        name,
		Description: in.Description,
		Type:        model.OrganizationTypeEndowment,
		Restriction: model.RestrictionRestricted,
		Units:       decimal.Zero,
		Amount:      decimal.Zero,
	}
	if in.Type != nil {
		if !in.Type.IsValid() {
			return nil, Validation("type must be Endowment or Donation")
		}
		org.Type = *in.Type
	}
	if in.Restriction != nil {
		if !in.Restriction.IsValid() {
			return nil, Validation("restriction must be Restricted or Unrestricted")
		}
		org.Restriction = *in.Restriction
	}
	if in.Units != nil {
		org.Units = *in.Units
	}
	if in.Amount != nil {
		org.Amount = *in.Amount
	}

	if err := s.orgStore.Create(ctx, org); err != nil {
		if !errors.Is(err, store.ErrConflict) {
			slog.ErrorContext(ctx, "failed to create organization", "error", err, "name", name)
		}
		return nil, fromStore(err, organizationMessages, false)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &org.ID})
	slog.InfoContext(ctx, "organization created", "name", org.Name)
	publish(ctx, s.broker, notify.EventCreated, "organization", org.ID, &org.ID)
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, orgID int64, patch model.OrganizationPatch) (*model.Organization, error) {
	if patch.IsEmpty() {
		return nil, Validation("No fields to update")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, Validation("Organization name must not be empty")
		}
		patch.Name = &name
	}
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, Validation("type must be Endowment or Donation")
	}
	if patch.Restriction != nil && !patch.Restriction.IsValid() {
		return nil, Validation("restriction must be Restricted or Unrestricted")
	}

	org, err := s.orgStore.Update(ctx, orgID, patch)
	if err != nil {
		return nil, fromStore(err, organizationMessages, false)
	}

	publish(ctx, s.broker, notify.EventUpdated, "organization", org.ID, &org.ID)
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, orgID int64) (*model.Organization, error) {
	org, err := s.orgStore.Delete(ctx, orgID)
	if err != nil {
		return nil, fromStore(err, organizationMessages, true)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &org.ID})
	slog.InfoContext(ctx, "organization deleted")
	publish(ctx, s.broker, notify.EventDeleted, "organization", org.ID, &org.ID)
	return org, nil
}

func (s *organizationService) Transactions(ctx context.Context, orgID int64, params url.Values) (query.Result[model.Transaction], error) {
	c, err := organizationTransactionSpec.Parse(params)
	if err != nil {
		return query.Result[model.Transaction]{}, invalidQuery(err)
	}
	if _, err := s.Get(ctx, orgID); err != nil {
		return query.Result[model.Transaction]{}, err
	}

	res, err := s.txStore.List(ctx, c.Where("organizationId", orgID))
	if err != nil {
		return res, fromStore(err, transactionMessages, false)
	}
	return res, nil
}

func (s *organizationService) Contributors(ctx context.Context, orgID int64, params url.Values) (query.Result[model.Contributor], error) {
	c, err := organizationContributorSpec.Parse(params)
	if err != nil {
		return query.Result[model.Contributor]{}, invalidQuery(err)
	}
	if _, err := s.Get(ctx, orgID); err != nil {
		return query.Result[model.Contributor]{}, err
	}

	res, err := s.contributorStore.ListByOrganization(ctx, orgID, c)
	if err != nil {
		return res, fromStore(err, contributorMessages, false)
	}
	return res, nil
}

func (s *organizationService) AddContributor(ctx context.Context, orgID, contributorID int64) (*model.OrganizationContributor, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &orgID, ContributorID: &contributorID})

	if _, err := s.Get(ctx, orgID); err != nil {
		return nil, err
	}
	if _, err := s.contributorStore.GetByID(ctx, contributorID); err != nil {
		return nil, fromStore(err, contributorMessages, false)
	}

	linked, err := s.contributorStore.IsLinked(ctx, orgID, contributorID)
	if err != nil {
		return nil, Internal(err)
	}
	if linked {
		return nil, alreadyLinked()
	}

	link, err := s.contributorStore.Link(ctx, orgID, contributorID)
	if err != nil {
		// A concurrent request may have linked the pair after the check.
		if errors.Is(err, store.ErrConflict) {
			return nil, alreadyLinked()
		}
		return nil, fromStore(err, contributorMessages, false)
	}

	slog.InfoContext(ctx, "contributor linked to organization")
	publish(ctx, s.broker, notify.EventLinked, "contributor", contributorID, &orgID)
	return link, nil
}

func alreadyLinked() *Error {
	return &Error{
		Kind:    KindConflict,
		Message: "Contributor is already linked to this organization",
		Status:  http.StatusBadRequest,
	}
}
