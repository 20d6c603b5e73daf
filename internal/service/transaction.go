package service

import (
	"context"
	"log/slog"
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

// CreateTransactionInput carries raw client values; Type and Date are
// validated by the service.
type CreateTransactionInput struct {
	OrganizationID *int64
	ContributorID  *int64
	FundID         *int64
	Type           string
	Date           string
	Amount         *decimal.Decimal
	Units          *decimal.Decimal
	Description    *string
}

// UpdateTransactionInput is a partial update; nil fields are left untouched.
// Date accepts the same formats as on create.
type UpdateTransactionInput struct {
	ContributorID *int64
	FundID        *int64
	Type          *model.TransactionType
	Date          *string
	Amount        *decimal.Decimal
	Units         *decimal.Decimal
	Description   *string
}

func (in UpdateTransactionInput) patch() (model.TransactionPatch, error) {
	patch := model.TransactionPatch{
		ContributorID: in.ContributorID,
		FundID:        in.FundID,
		Type:          in.Type,
		Amount:        in.Amount,
		Units:         in.Units,
		Description:   in.Description,
	}
	if in.Date != nil {
		date, _, err := query.ParseDate(strings.TrimSpace(*in.Date))
		if err != nil {
			return patch, Validation("date is not a valid date")
		}
		patch.Date = &date
	}
	return patch, nil
}

type TransactionService interface {
	List(ctx context.Context, params url.Values) (query.Result[model.Transaction], error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
	Create(ctx context.Context, in CreateTransactionInput) (*model.Transaction, error)
	Update(ctx context.Context, id int64, in UpdateTransactionInput) (*model.Transaction, error)
	Delete(ctx context.Context, id int64) (*model.Transaction, error)
}

type transactionService struct {
	txStore          store.TransactionStore
	orgStore         store.OrganizationStore
	contributorStore store.ContributorStore
	fundStore        store.FundStore
	broker           notify.Broker
}

func NewTransactionService(
	txStore store.TransactionStore,
	orgStore store.OrganizationStore,
	contributorStore store.ContributorStore,
	fundStore store.FundStore,
	broker notify.Broker,
) TransactionService {
	return &transactionService{
		txStore:          txStore,
		orgStore:         orgStore,
		contributorStore: contributorStore,
		fundStore:        fundStore,
		broker:           broker,
	}
}

func (s *transactionService) List(ctx context.Context, params url.Values) (query.Result[model.Transaction], error) {
	c, err := transactionSpec.Parse(params)
	if err != nil {
		return query.Result[model.Transaction]{}, invalidQuery(err)
	}
	res, err := s.txStore.List(ctx, c)
	if err != nil {
		return res, fromStore(err, transactionMessages, false)
	}
	return res, nil
}

func (s *transactionService) Get(ctx context.Context, txID int64) (*model.Transaction, error) {
	tx, err := s.txStore.GetByID(ctx, txID)
	if err != nil {
		return nil, fromStore(err, transactionMessages, false)
	}
	return tx, nil
}

func (s *transactionService) Create(ctx context.Context, in CreateTransactionInput) (*model.Transaction, error) {
	var missing []string
	if in.OrganizationID == nil {
		missing = append(missing, "organizationId")
	}
	if in.ContributorID == nil {
		missing = append(missing, "contributorId")
	}
	if in.FundID == nil {
		missing = append(missing, "fundId")
	}
	if strings.TrimSpace(in.Type) == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(in.Date) == "" {
		missing = append(missing, "date")
	}
	if in.Amount == nil {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, Validation("Missing required fields: " + strings.Join(missing, ", "))
	}

	typ := model.TransactionType(strings.TrimSpace(in.Type))
	if !typ.IsValid() {
		return nil, Validation("type must be one of DONATION, WITHDRAWAL, INVESTMENT, EXPENSE")
	}
	date, _, err := query.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, Validation("date is not a valid date")
	}
	if !in.Amount.IsPositive() {
		return nil, Validation("amount must be greater than zero")
	}

	if err := s.checkReferences(ctx, in.OrganizationID, in.ContributorID, in.FundID); err != nil {
		return nil, err
	}

	tx := &model.Transaction{
		ID:             id.New(),
		OrganizationID: *in.OrganizationID,
		ContributorID:  in.ContributorID,
		FundID:         in.FundID,
		Type:           typ,
		Date:           date,
		Amount:         *in.Amount,
		Units:          in.Units,
		Description:    in.Description,
	}
	if err := s.txStore.Create(ctx, tx); err != nil {
		slog.ErrorContext(ctx, "failed to create transaction", "error", err)
		return nil, fromStore(err, transactionMessages, false)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{TransactionID: &tx.ID, OrganizationID: &tx.OrganizationID})
	slog.InfoContext(ctx, "transaction created", "type", tx.Type, "amount", tx.Amount.String())
	publish(ctx, s.broker, notify.EventCreated, "transaction", tx.ID, &tx.OrganizationID)
	return tx, nil
}

func (s *transactionService) Update(ctx context.Context, txID int64, in UpdateTransactionInput) (*model.Transaction, error) {
	patch, err := in.patch()
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, Validation("No fields to update")
	}
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, Validation("type must be one of DONATION, WITHDRAWAL, INVESTMENT, EXPENSE")
	}
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return nil, Validation("amount must be greater than zero")
	}
	if err := s.checkReferences(ctx, nil, patch.ContributorID, patch.FundID); err != nil {
		return nil, err
	}

	tx, err := s.txStore.Update(ctx, txID, patch)
	if err != nil {
		return nil, fromStore(err, transactionMessages, false)
	}

	publish(ctx, s.broker, notify.EventUpdated, "transaction", tx.ID, &tx.OrganizationID)
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, txID int64) (*model.Transaction, error) {
	tx, err := s.txStore.Delete(ctx, txID)
	if err != nil {
		return nil, fromStore(err, transactionMessages, true)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{TransactionID: &tx.ID})
	slog.InfoContext(ctx, "transaction deleted")
	publish(ctx, s.broker, notify.EventDeleted, "transaction", tx.ID, &tx.OrganizationID)
	return tx, nil
}

// checkReferences verifies that every given related record exists.
func (s *transactionService) checkReferences(ctx context.Context, orgID, contributorID, fundID *int64) error {
	if orgID != nil {
		if _, err := s.orgStore.GetByID(ctx, *orgID); err != nil {
			return fromStore(err, organizationMessages, false)
		}
	}
	if contributorID != nil {
		if _, err := s.contributorStore.GetByID(ctx, *contributorID); err != nil {
			return fromStore(err, contributorMessages, false)
		}
	}
	if fundID != nil {
		if _, err := s.fundStore.GetByID(ctx, *fundID); err != nil {
			return fromStore(err, messages{notFound: "Fund not found"}, false)
		}
	}
	return nil
}
