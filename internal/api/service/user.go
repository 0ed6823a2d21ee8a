package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/store"
	"github.com/hazelworks/finbook/pkg/cryptox"
)

var ErrUserNotFound = errors.New("service: user not found")

type UserService struct {
	Store store.Store
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByUsername resolves an account by its exact username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetByIdentifier(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// UserUpdate carries the mutable account fields. A non-empty Password is
// re-hashed; an empty one keeps the current hash.
type UserUpdate struct {
	Username string
	Email    string
	Password string
}

func (s *UserService) Update(ctx context.Context, id string, in UserUpdate) (domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" {
		return domain.User{}, ErrMissingField
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Username = in.Username
	user.Email = in.Email
	if in.Password != "" {
		hash, err := cryptox.HashPassword(in.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.Store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateUser
		}
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	return s.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Users().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
