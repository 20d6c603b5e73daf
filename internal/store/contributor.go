package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"chem.app/api/core/db"
	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
)

var contributorColumns = []string{"id", "first_name", "last_name", "organization_id", "created_at", "updated_at"}

var contributorSorts = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// contributorTable filters organizationId by membership in
// organization_contributors, not by the primary organization column.
var contributorTable = query.Table{
	From:    "contributors c",
	Columns: columns("c", contributorColumns),
	Fields: map[string]string{
		"firstName": "c.first_name",
		"lastName":  "c.last_name",
	},
	Predicates: map[string]string{
		"organizationId": "EXISTS (SELECT 1 FROM organization_contributors oc WHERE oc.contributor_id = c.id AND oc.organization_id = %s)",
	},
	Sorts: contributorSorts,
}

// memberTable lists contributors through their organization links.
var memberTable = query.Table{
	From:    "contributors c JOIN organization_contributors oc ON oc.contributor_id = c.id",
	Columns: columns("c", contributorColumns),
	Fields: map[string]string{
		"firstName":      "c.first_name",
		"lastName":       "c.last_name",
		"organizationId": "oc.organization_id",
	},
	Sorts: contributorSorts,
}

type contributorStore struct {
	q db.DBTX
}

func newContributorStore(q db.DBTX) ContributorStore {
	return &contributorStore{q: q}
}

func (s *contributorStore) List(ctx context.Context, c query.Criteria) (query.Result[model.Contributor], error) {
	return list(ctx, s.q, contributorTable, c, scanContributor)
}

func (s *contributorStore) ListByOrganization(ctx context.Context, orgID int64, c query.Criteria) (query.Result[model.Contributor], error) {
	return list(ctx, s.q, memberTable, c.Where("organizationId", orgID), scanContributor)
}

func (s *contributorStore) GetByID(ctx context.Context, id int64) (*model.Contributor, error) {
	row := s.q.QueryRow(ctx,
		"SELECT "+strings.Join(contributorColumns, ", ")+" FROM contributors WHERE id = $1", id)
	contributor, err := scanContributor(row)
	if err != nil {
		return nil, translate(err)
	}
	return contributor, nil
}

func (s *contributorStore) Create(ctx context.Context, contributor *model.Contributor) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO contributors (id, first_name, last_name, organization_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+strings.Join(contributorColumns, ", "),
		contributor.ID, contributor.FirstName, contributor.LastName, contributor.OrganizationID,
	)
	created, err := scanContributor(row)
	if err != nil {
		return translate(err)
	}
	*contributor = *created
	return nil
}

func (s *contributorStore) Update(ctx context.Context, id int64, patch model.ContributorPatch) (*model.Contributor, error) {
	var a assignments
	if patch.FirstName != nil {
		a.set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		a.set("last_name", *patch.LastName)
	}
	if patch.OrganizationID != nil {
		a.set("organization_id", *patch.OrganizationID)
	}
	if a.empty() {
		return s.GetByID(ctx, id)
	}

	sql, args := a.update("contributors", id, contributorColumns)
	contributor, err := scanContributor(s.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return contributor, nil
}

func (s *contributorStore) Delete(ctx context.Context, id int64) (*model.Contributor, error) {
	row := s.q.QueryRow(ctx,
		"DELETE FROM contributors WHERE id = $1 RETURNING "+strings.Join(contributorColumns, ", "), id)
	contributor, err := scanContributor(row)
	if err != nil {
		return nil, translate(err)
	}
	return contributor, nil
}

func (s *contributorStore) Link(ctx context.Context, orgID, contributorID int64) (*model.OrganizationContributor, error) {
	var link model.OrganizationContributor
	err := s.q.QueryRow(ctx, `
		INSERT INTO organization_contributors (organization_id, contributor_id)
		VALUES ($1, $2)
		RETURNING organization_id, contributor_id, created_at`,
		orgID, contributorID,
	).Scan(&link.OrganizationID, &link.ContributorID, &link.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (s *contributorStore) IsLinked(ctx context.Context, orgID, contributorID int64) (bool, error) {
	var linked bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM organization_contributors WHERE organization_id = $1 AND contributor_id = $2
		)`, orgID, contributorID,
	).Scan(&linked)
	if err != nil {
		return false, translate(err)
	}
	return linked, nil
}

func scanContributor(row pgx.Row, extra ...any) (*model.Contributor, error) {
	var c model.Contributor
	dest := append([]any{
		&c.ID, &c.FirstName, &c.LastName, &c.OrganizationID, &c.CreatedAt, &c.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}
