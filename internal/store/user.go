package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"chem.app/api/core/db"
	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
)

var userColumns = []string{
	"id", "firebase_uid", "email", "first_name", "last_name", "role", "organization_id", "created_at", "updated_at",
}

var userTable = query.Table{
	From:    "users u",
	Columns: columns("u", userColumns),
	Fields: map[string]string{
		"email":          "u.email",
		"firstName":      "u.first_name",
		"lastName":       "u.last_name",
		"role":           "u.role",
		"organizationId": "u.organization_id",
	},
	Sorts: map[string]string{
		"id":        "id",
		"email":     "email",
		"firstName": "first_name",
		"lastName":  "last_name",
		"role":      "role",
		"createdAt": "created_at",
	},
}

type userStore struct {
	q db.DBTX
}

func newUserStore(q db.DBTX) UserStore {
	return &userStore{q: q}
}

func (s *userStore) List(ctx context.Context, c query.Criteria) (query.Result[model.User], error) {
	return list(ctx, s.q, userTable, c, scanUser)
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx, "SELECT "+strings.Join(userColumns, ", ")+" FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *userStore) GetByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	var org model.Organization
	row := s.q.QueryRow(ctx,
		"SELECT "+strings.Join(columns("u", userColumns), ", ")+", "+strings.Join(columns("o", organizationColumns), ", ")+`
		FROM users u JOIN organizations o ON o.id = u.organization_id
		WHERE u.firebase_uid = $1`, uid)
	user, err := scanUser(row,
		&org.ID, &org.Name, &org.Description, &org.Type, &org.Restriction, &org.Units, &org.Amount,
		&org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	user.Organization = &org
	return user, nil
}

func (s *userStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		return false, translate(err)
	}
	return exists, nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO users (id, firebase_uid, email, first_name, last_name, role, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+strings.Join(userColumns, ", "),
		user.ID, user.FirebaseUID, user.Email, user.FirstName, user.LastName, user.Role, user.OrganizationID,
	)
	created, err := scanUser(row)
	if err != nil {
		return translate(err)
	}
	*user = *created
	return nil
}

func scanUser(row pgx.Row, extra ...any) (*model.User, error) {
	var u model.User
	dest := append([]any{
		&u.ID, &u.FirebaseUID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.OrganizationID,
		&u.CreatedAt, &u.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &u, nil
}
