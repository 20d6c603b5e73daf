package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"chem.app/api/core/db"
	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
)

var organizationColumns = []string{
	"id", "name", "description", "type", "restriction", "units", "amount", "created_at", "updated_at",
}

var organizationTable = query.Table{
	From:    "organizations o",
	Columns: columns("o", organizationColumns),
	Fields: map[string]string{
		"name":        "o.name",
		"type":        "o.type",
		"restriction": "o.restriction",
	},
	Sorts: map[string]string{
		"id":          "id",
		"name":        "name",
		"type":        "type",
		"restriction": "restriction",
		"units":       "units",
		"amount":      "amount",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	},
}

type organizationStore struct {
	q db.DBTX
}

func newOrganizationStore(q db.DBTX) OrganizationStore {
	return &organizationStore{q: q}
}

func (s *organizationStore) List(ctx context.Context, c query.Criteria) (query.Result[model.Organization], error) {
	return list(ctx, s.q, organizationTable, c, scanOrganization)
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row := s.q.QueryRow(ctx,
		"SELECT "+strings.Join(organizationColumns, ", ")+" FROM organizations WHERE id = $1", id)
	org, err := scanOrganization(row)
	if err != nil {
		return nil, translate(err)
	}
	return org, nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO organizations (id, name, description, type, restriction, units, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+strings.Join(organizationColumns, ", "),
		org.ID, org.Name, org.Description, org.Type, org.Restriction, org.Units, org.Amount,
	)
	created, err := scanOrganization(row)
	if err != nil {
		return translate(err)
	}
	*org = *created
	return nil
}

func (s *organizationStore) Update(ctx context.Context, id int64, patch model.OrganizationPatch) (*model.Organization, error) {
	var a assignments
	if patch.Name != nil {
		a.set("name", *patch.Name)
	}
	if patch.Description != nil {
		a.set("description", *patch.Description)
	}
	if patch.Type != nil {
		a.set("type", *patch.Type)
	}
	if patch.Restriction != nil {
		a.set("restriction", *patch.Restriction)
	}
	if patch.Units != nil {
		a.set("units", *patch.Units)
	}
	if patch.Amount != nil {
		a.set("amount", *patch.Amount)
	}
	if a.empty() {
		return s.GetByID(ctx, id)
	}

	sql, args := a.update("organizations", id, organizationColumns)
	org, err := scanOrganization(s.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return org, nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) (*model.Organization, error) {
	row := s.q.QueryRow(ctx,
		"DELETE FROM organizations WHERE id = $1 RETURNING "+strings.Join(organizationColumns, ", "), id)
	org, err := scanOrganization(row)
	if err != nil {
		return nil, translate(err)
	}
	return org, nil
}

func scanOrganization(row pgx.Row, extra ...any) (*model.Organization, error) {
	var o model.Organization
	dest := append([]any{
		&o.ID, &o.Name, &o.Description, &o.Type, &o.Restriction, &o.Units, &o.Amount, &o.CreatedAt, &o.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &o, nil
}
