package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/encomendas/tracking-service/internal/config"
	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/pkg/trm"

	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u entities.User) error
	GetUserByID(ctx context.Context, id string) (entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	UpdateUser(ctx context.Context, u entities.User) error
	DeleteUser(ctx context.Context, id string) error
	CountOrdersByUser(ctx context.Context, id string) (int, error)
}

type userService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      UserRepo
	policy    config.Policy
}

func NewUserService(logger *slog.Logger, txManager trm.Manager, repo UserRepo, policy config.Policy) *userService {
	return &userService{
		logger:    logger.With(slog.String("service", "user")),
		txManager: txManager,
		repo:      repo,
		policy:    policy,
	}
}

// CreateUser stores a new account with a bcrypt-hashed password. A
// duplicate email surfaces as entities.ErrEmailTaken and nothing is
// committed.
func (s *userService) CreateUser(ctx context.Context, id entities.IDSource, name, email, password string) (entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		ID:           id.Value(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.CreateUser(ctx, user)
	})
	if err != nil {
		return entities.User{}, err
	}

	s.logger.Debug("user created", slog.String("user_id", user.ID))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateUser replaces the whole record, rehashing the submitted password.
func (s *userService) UpdateUser(ctx context.Context, id, name, email, password string) (entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.UpdateUser(ctx, user)
	})
	if err != nil {
		return entities.User{}, err
	}

	s.logger.Debug("user updated", slog.String("user_id", id))
	return user, nil
}

// DeleteUser removes the account. Under the restrict policy a user still
// named on orders cannot be deleted; under detach the orders keep their
// now-dangling buyer/seller ids, matching the store's historical behavior.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if s.policy.Reference == config.PolicyRestrict {
			count, err := s.repo.CountOrdersByUser(ctx, id)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("user %s: %w", id, entities.ErrUserReferenced)
			}
		}
		return s.repo.DeleteUser(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("user deleted", slog.String("user_id", id))
	return nil
}
