package store

import (
	"context"
	"errors"

	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a unique constraint
	ErrConflict = errors.New("already exists")
	// ErrReference is returned when a write points at a missing row or a
	// delete would orphan dependent rows
	ErrReference = errors.New("foreign key violation")
	// ErrCheck is returned when a row fails a CHECK constraint
	ErrCheck = errors.New("check constraint violation")
)

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	List(ctx context.Context, c query.Criteria) (query.Result[model.Organization], error)
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, id int64, patch model.OrganizationPatch) (*model.Organization, error)
	Delete(ctx context.Context, id int64) (*model.Organization, error)
}

// ContributorStore defines the contract for contributor data access,
// including organization membership links
type ContributorStore interface {
	List(ctx context.Context, c query.Criteria) (query.Result[model.Contributor], error)
	ListByOrganization(ctx context.Context, orgID int64, c query.Criteria) (query.Result[model.Contributor], error)
	GetByID(ctx context.Context, id int64) (*model.Contributor, error)
	Create(ctx context.Context, contributor *model.Contributor) error
	Update(ctx context.Context, id int64, patch model.ContributorPatch) (*model.Contributor, error)
	Delete(ctx context.Context, id int64) (*model.Contributor, error)
	Link(ctx context.Context, orgID, contributorID int64) (*model.OrganizationContributor, error)
	IsLinked(ctx context.Context, orgID, contributorID int64) (bool, error)
}

// TransactionStore defines the contract for transaction data access
type TransactionStore interface {
	List(ctx context.Context, c query.Criteria) (query.Result[model.Transaction], error)
	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	Create(ctx context.Context, tx *model.Transaction) error
	Update(ctx context.Context, id int64, patch model.TransactionPatch) (*model.Transaction, error)
	Delete(ctx context.Context, id int64) (*model.Transaction, error)
}

// UserStore defines the contract for user data access
type UserStore interface {
	List(ctx context.Context, c query.Criteria) (query.Result[model.User], error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByFirebaseUID returns the user with its organization populated.
	GetByFirebaseUID(ctx context.Context, uid string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *model.User) error
}

// FundStore defines the contract for fund lookups
type FundStore interface {
	GetByID(ctx context.Context, id int64) (*model.Fund, error)
}
