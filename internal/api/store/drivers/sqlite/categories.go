package sqlite

import (
	"context"
	"time"

	"github.com/hazelworks/finbook/internal/api/domain"
)

type categoriesRepo struct {
	q dbtx
}

const categoryColumns = `id, name, description, created_at, updated_at`

func (r *categoriesRepo) GetByID(ctx context.Context, id string) (domain.Category, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

func (r *categoriesRepo) GetByName(ctx context.Context, name string) (domain.Category, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = ?`, name)
	return scanCategory(row)
}

func (r *categoriesRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoriesRepo) Create(ctx context.Context, c domain.Category) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO categories (id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, now, now)
	return mapConstraint(err)
}

func (r *categoriesRepo) Update(ctx context.Context, c domain.Category) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Description, time.Now().UTC(), c.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowChanged(res)
}

func (r *categoriesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func scanCategory(row rowScanner) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}
