package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/store"
	"github.com/hazelworks/finbook/pkg/idx"
)

var (
	ErrCategoryNotFound  = errors.New("service: category not found")
	ErrDuplicateCategory = errors.New("service: category name already exists")
)

type CategoryService struct {
	Store store.Store
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ErrMissingField
	}

	category := domain.Category{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
	}
	if err := s.Store.Categories().Create(ctx, category); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, ErrDuplicateCategory
		}
		return domain.Category{}, err
	}
	return s.GetByID(ctx, category.ID)
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (domain.Category, error) {
	category, err := s.Store.Categories().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Category{}, ErrCategoryNotFound
		}
		return domain.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id, name, description string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ErrMissingField
	}

	category, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	category.Name = name
	category.Description = description
	if err := s.Store.Categories().Update(ctx, category); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, ErrDuplicateCategory
		}
		if errors.Is(err, store.ErrNotFound) {
			return domain.Category{}, ErrCategoryNotFound
		}
		return domain.Category{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Categories().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
