package service

import (
	"context"
	"errors"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/store"
	"github.com/hazelworks/finbook/pkg/idx"
)

var (
	ErrTransactionNotFound = errors.New("service: transaction not found")
	ErrTransactionAmount   = errors.New("service: transaction amount must be greater than 0")
)

type TransactionService struct {
	Store store.Store
}

func (s *TransactionService) Create(ctx context.Context, userID, categoryID string, amount float64, description string) (domain.Transaction, error) {
	if amount <= 0 {
		return domain.Transaction{}, ErrTransactionAmount
	}
	if userID == "" || categoryID == "" {
		return domain.Transaction{}, ErrMissingField
	}

	transaction := domain.Transaction{
		ID:          idx.New().String(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
	}
	if err := s.Store.Transactions().Create(ctx, transaction); err != nil {
		return domain.Transaction{}, err
	}
	return s.GetByID(ctx, transaction.ID)
}

func (s *TransactionService) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	transaction, err := s.Store.Transactions().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Transaction{}, ErrTransactionNotFound
		}
		return domain.Transaction{}, err
	}
	return transaction, nil
}

func (s *TransactionService) List(ctx context.Context) ([]domain.Transaction, error) {
	return s.Store.Transactions().List(ctx)
}

func (s *TransactionService) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.Store.Transactions().ListByUser(ctx, userID)
}

// Update changes amount and description; the owning user and category are
// fixed at creation.
func (s *TransactionService) Update(ctx context.Context, id string, amount float64, description string) (domain.Transaction, error) {
	if amount <= 0 {
		return domain.Transaction{}, ErrTransactionAmount
	}

	if err := s.Store.Transactions().Update(ctx, id, amount, description); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Transaction{}, ErrTransactionNotFound
		}
		return domain.Transaction{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Transactions().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}
