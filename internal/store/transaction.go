package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"chem.app/api/core/db"
	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
)

var transactionColumns = []string{
	"id", "organization_id", "contributor_id", "fund_id", "type", "date", "amount", "units", "description",
	"created_at", "updated_at",
}

var transactionTable = query.Table{
	From:    "transactions t",
	Columns: columns("t", transactionColumns),
	Fields: map[string]string{
		"organizationId": "t.organization_id",
		"contributorId":  "t.contributor_id",
		"fundId":         "t.fund_id",
		"type":           "t.type",
		"date":           "t.date",
		"description":    "t.description",
	},
	Sorts: map[string]string{
		"id":        "id",
		"date":      "date",
		"amount":    "amount",
		"type":      "type",
		"units":     "units",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
}

type transactionStore struct {
	q db.DBTX
}

func newTransactionStore(q db.DBTX) TransactionStore {
	return &transactionStore{q: q}
}

func (s *transactionStore) List(ctx context.Context, c query.Criteria) (query.Result[model.Transaction], error) {
	return list(ctx, s.q, transactionTable, c, scanTransaction)
}

func (s *transactionStore) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	row := s.q.QueryRow(ctx,
		"SELECT "+strings.Join(transactionColumns, ", ")+" FROM transactions WHERE id = $1", id)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, translate(err)
	}
	return tx, nil
}

func (s *transactionStore) Create(ctx context.Context, tx *model.Transaction) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO transactions (id, organization_id, contributor_id, fund_id, type, date, amount, units, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+strings.Join(transactionColumns, ", "),
		tx.ID, tx.OrganizationID, tx.ContributorID, tx.FundID, tx.Type, tx.Date, tx.Amount, tx.Units, tx.Description,
	)
	created, err := scanTransaction(row)
	if err != nil {
		return translate(err)
	}
	*tx = *created
	return nil
}

func (s *transactionStore) Update(ctx context.Context, id int64, patch model.TransactionPatch) (*model.Transaction, error) {
	var a assignments
	if patch.ContributorID != nil {
		a.set("contributor_id", *patch.ContributorID)
	}
	if patch.FundID != nil {
		a.set("fund_id", *patch.FundID)
	}
	if patch.Type != nil {
		a.set("type", *patch.Type)
	}
	if patch.Date != nil {
		a.set("date", *patch.Date)
	}
	if patch.Amount != nil {
		a.set("amount", *patch.Amount)
	}
	if patch.Units != nil {
		a.set("units", *patch.Units)
	}
	if patch.Description != nil {
		a.set("description", *patch.Description)
	}
	if a.empty() {
		return s.GetByID(ctx, id)
	}

	sql, args := a.update("transactions", id, transactionColumns)
	tx, err := scanTransaction(s.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return tx, nil
}

func (s *transactionStore) Delete(ctx context.Context, id int64) (*model.Transaction, error) {
	row := s.q.QueryRow(ctx,
		"DELETE FROM transactions WHERE id = $1 RETURNING "+strings.Join(transactionColumns, ", "), id)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, translate(err)
	}
	return tx, nil
}

func scanTransaction(row pgx.Row, extra ...any) (*model.Transaction, error) {
	var t model.Transaction
	dest := append([]any{
		&t.ID, &t.OrganizationID, &t.ContributorID, &t.FundID, &t.Type, &t.Date, &t.Amount, &t.Units,
		&t.Description, &t.CreatedAt, &t.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &t, nil
}
