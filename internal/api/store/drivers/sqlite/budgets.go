package sqlite

import (
	"context"
	"time"

	"github.com/hazelworks/finbook/internal/api/domain"
)

type budgetsRepo struct {
	q dbtx
}

const budgetColumns = `id, user_id, category_id, amount, created_at, updated_at`

func (r *budgetsRepo) GetByID(ctx context.Context, id string) (domain.Budget, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id)
	return scanBudget(row)
}

func (r *budgetsRepo) List(ctx context.Context) ([]domain.Budget, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (r *budgetsRepo) Create(ctx context.Context, b domain.Budget) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO budgets (id, user_id, category_id, amount, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.CategoryID, b.Amount, now, now)
	return mapConstraint(err)
}

func (r *budgetsRepo) UpdateAmount(ctx context.Context, id string, amount float64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE budgets SET amount = ?, updated_at = ? WHERE id = ?`,
		amount, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *budgetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func scanBudget(row rowScanner) (domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return domain.Budget{}, mapNotFound(err)
	}
	return b, nil
}
