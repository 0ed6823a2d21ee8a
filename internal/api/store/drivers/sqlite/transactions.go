package sqlite

import (
	"context"
	"time"

	"github.com/hazelworks/finbook/internal/api/domain"
)

type transactionsRepo struct {
	q dbtx
}

const transactionColumns = `id, user_id, category_id, amount, description, created_at, updated_at`

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	return scanTransaction(row)
}

func (r *transactionsRepo) List(ctx context.Context) ([]domain.Transaction, error) {
	return r.list(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY id DESC`)
}

func (r *transactionsRepo) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return r.list(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? ORDER BY id DESC`,
		userID)
}

func (r *transactionsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionsRepo) Create(ctx context.Context, t domain.Transaction) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, category_id, amount, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.CategoryID, t.Amount, t.Description, now, now)
	return mapConstraint(err)
}

func (r *transactionsRepo) Update(ctx context.Context, id string, amount float64, description string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE transactions SET amount = ?, description = ?, updated_at = ? WHERE id = ?`,
		amount, description, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *transactionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Transaction{}, mapNotFound(err)
	}
	return t, nil
}
