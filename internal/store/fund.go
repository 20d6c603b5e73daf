package store

import (
	"context"

	"chem.app/api/core/db"
	"chem.app/api/internal/model"
)

type fundStore struct {
	q db.DBTX
}

func newFundStore(q db.DBTX) FundStore {
	return &fundStore{q: q}
}

func (s *fundStore) GetByID(ctx context.Context, id int64) (*model.Fund, error) {
	var f model.Fund
	err := s.q.QueryRow(ctx, `
		SELECT id, name, type, restriction, purpose, organization_id, units, amount, description, created_at, updated_at
		FROM funds WHERE id = $1`, id,
	).Scan(&f.ID, &f.Name, &f.Type, &f.Restriction, &f.Purpose, &f.OrganizationID,
		&f.Units, &f.Amount, &f.Description, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}
