// Package store defines the persistence interface the services depend on.
// Concrete drivers live under drivers/.
package store

import (
	"context"
	"errors"

	"github.com/hazelworks/finbook/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories per
// aggregate to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Categories() Categories
	Budgets() Budgets
	Transactions() Transactions

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Tx is a transaction-scoped view of the repositories.
type Tx interface {
	Users() Users
	Categories() Categories
	Budgets() Budgets
	Transactions() Transactions
}

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByIdentifier resolves a login identifier, matching the username
	// first and falling back to the email address.
	GetByIdentifier(ctx context.Context, identifier string) (domain.User, error)

	// List returns all users ordered newest first.
	List(ctx context.Context) ([]domain.User, error)

	// Create inserts a new user (id minted by the caller). A username or
	// email collision surfaces as ErrAlreadyExists.
	Create(ctx context.Context, u domain.User) error

	// Update rewrites username, email, password hash and role, bumping
	// updated_at. Collisions surface as ErrAlreadyExists.
	Update(ctx context.Context, u domain.User) error

	// Delete removes a user; owned budgets and transactions cascade.
	Delete(ctx context.Context, id string) error

	// IsEmpty reports whether any user exists at all.
	IsEmpty(ctx context.Context) (bool, error)
}

type Categories interface {
	GetByID(ctx context.Context, id string) (domain.Category, error)

	// GetByName supports the uniqueness check on create/rename.
	GetByName(ctx context.Context, name string) (domain.Category, error)

	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c domain.Category) error
	Update(ctx context.Context, c domain.Category) error
	Delete(ctx context.Context, id string) error
}

type Budgets interface {
	GetByID(ctx context.Context, id string) (domain.Budget, error)
	List(ctx context.Context) ([]domain.Budget, error)
	Create(ctx context.Context, b domain.Budget) error

	// UpdateAmount changes the allowance and bumps updated_at. Only the
	// amount is mutable after creation.
	UpdateAmount(ctx context.Context, id string, amount float64) error

	Delete(ctx context.Context, id string) error
}

type Transactions interface {
	GetByID(ctx context.Context, id string) (domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)

	// ListByUser returns a user's transactions ordered newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)

	Create(ctx context.Context, t domain.Transaction) error

	// Update changes amount and description, bumping updated_at.
	Update(ctx context.Context, id string, amount float64, description string) error

	Delete(ctx context.Context, id string) error
}
