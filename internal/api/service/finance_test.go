package service

import (
	"context"
	"testing"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	users        *UserService
	categories   *CategoryService
	budgets      *BudgetService
	transactions *TransactionService
	store        *sqlite.Store
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return testServices{
		users:        &UserService{Store: st},
		categories:   &CategoryService{Store: st},
		budgets:      &BudgetService{Store: st},
		transactions: &TransactionService{Store: st},
		store:        st,
	}
}

func (s testServices) seedUser(t *testing.T, username string) domain.User {
	t.Helper()

	svc := &AuthService{Store: s.store}
	u, err := svc.Signup(context.Background(), username, username+"@x.com", "secret123")
	require.NoError(t, err)
	return u
}

func TestCategoryService(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	ctx := context.Background()

	cat, err := s.categories.Create(ctx, "groceries", "food and household")
	require.NoError(t, err)
	require.NotEmpty(t, cat.ID)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.categories.Create(ctx, "groceries", "")
		require.ErrorIs(t, err, ErrDuplicateCategory)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := s.categories.Create(ctx, "", "desc")
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("update and fetch", func(t *testing.T) {
		updated, err := s.categories.Update(ctx, cat.ID, "food", "renamed")
		require.NoError(t, err)
		require.Equal(t, "food", updated.Name)

		got, err := s.categories.GetByID(ctx, cat.ID)
		require.NoError(t, err)
		require.Equal(t, "food", got.Name)
	})

	t.Run("empty list is not an error", func(t *testing.T) {
		require.NoError(t, s.categories.Delete(ctx, cat.ID))

		list, err := s.categories.List(ctx)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := s.categories.GetByID(ctx, "nope")
		require.ErrorIs(t, err, ErrCategoryNotFound)
		require.ErrorIs(t, s.categories.Delete(ctx, "nope"), ErrCategoryNotFound)
	})
}

func TestBudgetServiceValidation(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	ctx := context.Background()

	user := s.seedUser(t, "alice")
	cat, err := s.categories.Create(ctx, "rent", "")
	require.NoError(t, err)

	_, err = s.budgets.Create(ctx, user.ID, cat.ID, 0)
	require.ErrorIs(t, err, ErrBudgetAmount)
	_, err = s.budgets.Create(ctx, user.ID, cat.ID, -10)
	require.ErrorIs(t, err, ErrBudgetAmount)
	_, err = s.budgets.Create(ctx, "", cat.ID, 100)
	require.ErrorIs(t, err, ErrMissingField)

	b, err := s.budgets.Create(ctx, user.ID, cat.ID, 1200.50)
	require.NoError(t, err)

	updated, err := s.budgets.UpdateAmount(ctx, b.ID, 1500)
	require.NoError(t, err)
	require.Equal(t, float64(1500), updated.Amount)

	_, err = s.budgets.UpdateAmount(ctx, b.ID, 0)
	require.ErrorIs(t, err, ErrBudgetAmount)

	_, err = s.budgets.GetByID(ctx, "nope")
	require.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestTransactionService(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	ctx := context.Background()

	alice := s.seedUser(t, "alice")
	bob := s.seedUser(t, "bob")
	cat, err := s.categories.Create(ctx, "dining", "")
	require.NoError(t, err)

	_, err = s.transactions.Create(ctx, alice.ID, cat.ID, 0, "zero")
	require.ErrorIs(t, err, ErrTransactionAmount)

	tx1, err := s.transactions.Create(ctx, alice.ID, cat.ID, 25.40, "lunch")
	require.NoError(t, err)
	_, err = s.transactions.Create(ctx, bob.ID, cat.ID, 12.00, "coffee")
	require.NoError(t, err)

	t.Run("list by user", func(t *testing.T) {
		mine, err := s.transactions.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, "lunch", mine[0].Description)

		all, err := s.transactions.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := s.transactions.Update(ctx, tx1.ID, 30, "team lunch")
		require.NoError(t, err)
		require.Equal(t, "team lunch", updated.Description)
		require.Equal(t, float64(30), updated.Amount)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.transactions.Delete(ctx, tx1.ID))
		require.ErrorIs(t, s.transactions.Delete(ctx, tx1.ID), ErrTransactionNotFound)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	ctx := context.Background()

	alice := s.seedUser(t, "alice")
	s.seedUser(t, "bob")

	t.Run("rename", func(t *testing.T) {
		updated, err := s.users.Update(ctx, alice.ID, UserUpdate{Username: "alice2", Email: "alice2@x.com"})
		require.NoError(t, err)
		require.Equal(t, "alice2", updated.Username)
	})

	t.Run("password change is rehashed", func(t *testing.T) {
		before, err := s.users.GetByID(ctx, alice.ID)
		require.NoError(t, err)

		updated, err := s.users.Update(ctx, alice.ID, UserUpdate{Username: "alice2", Email: "alice2@x.com", Password: "newsecret"})
		require.NoError(t, err)
		require.NotEqual(t, before.PasswordHash, updated.PasswordHash)
		require.NotEqual(t, "newsecret", updated.PasswordHash)
	})

	t.Run("taken username", func(t *testing.T) {
		_, err := s.users.Update(ctx, alice.ID, UserUpdate{Username: "bob", Email: "alice2@x.com"})
		require.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.users.GetByID(ctx, "nope")
		require.ErrorIs(t, err, ErrUserNotFound)
		require.ErrorIs(t, s.users.Delete(ctx, "nope"), ErrUserNotFound)
	})
}
