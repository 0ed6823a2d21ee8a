package service

import (
	"context"
	"errors"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/store"
	"github.com/hazelworks/finbook/pkg/idx"
)

var (
	ErrBudgetNotFound = errors.New("service: budget not found")
	ErrBudgetAmount   = errors.New("service: budget amount must be greater than 0")
)

type BudgetService struct {
	Store store.Store
}

func (s *BudgetService) Create(ctx context.Context, userID, categoryID string, amount float64) (domain.Budget, error) {
	if amount <= 0 {
		return domain.Budget{}, ErrBudgetAmount
	}
	if userID == "" || categoryID == "" {
		return domain.Budget{}, ErrMissingField
	}

	budget := domain.Budget{
		ID:         idx.New().String(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
	}
	if err := s.Store.Budgets().Create(ctx, budget); err != nil {
		return domain.Budget{}, err
	}
	return s.GetByID(ctx, budget.ID)
}

func (s *BudgetService) GetByID(ctx context.Context, id string) (domain.Budget, error) {
	budget, err := s.Store.Budgets().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Budget{}, ErrBudgetNotFound
		}
		return domain.Budget{}, err
	}
	return budget, nil
}

func (s *BudgetService) List(ctx context.Context) ([]domain.Budget, error) {
	return s.Store.Budgets().List(ctx)
}

// UpdateAmount changes the allowance. Amount is the only field a budget
// allows to change after creation.
func (s *BudgetService) UpdateAmount(ctx context.Context, id string, amount float64) (domain.Budget, error) {
	if amount <= 0 {
		return domain.Budget{}, ErrBudgetAmount
	}

	if err := s.Store.Budgets().UpdateAmount(ctx, id, amount); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Budget{}, ErrBudgetNotFound
		}
		return domain.Budget{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *BudgetService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Budgets().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBudgetNotFound
		}
		return err
	}
	return nil
}
