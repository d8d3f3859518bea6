package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/encomendas/tracking-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) CreateUser(ctx context.Context, u entities.User) error {
	query, args := r.qb.Insert("users").
		Columns("id", "name", "email", "password_hash").
		Values(u.ID, u.Name, u.Email, u.PasswordHash).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %s: %w", u.Email, entities.ErrEmailTaken)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	query, args := r.qb.Select("id", "name", "email", "password_hash").
		From("users").
		Where(sq.Eq{"id": id}).
		MustSql()

	var user User
	err := r.getContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, fmt.Errorf("user %s: %w", id, entities.ErrUserNotFound)
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return UserToEntity(user), nil
}

func (r *postgresRepo) ListUsers(ctx context.Context) ([]entities.User, error) {
	query, args := r.qb.Select("id", "name", "email", "password_hash").
		From("users").
		OrderBy("name").
		MustSql()

	var users []User
	if err := r.selectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]entities.User, 0, len(users))
	for _, u := range users {
		result = append(result, UserToEntity(u))
	}
	return result, nil
}

func (r *postgresRepo) UpdateUser(ctx context.Context, u entities.User) error {
	query, args := r.qb.Update("users").
		Set("name", u.Name).
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Where(sq.Eq{"id": u.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %s: %w", u.Email, entities.ErrEmailTaken)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("user %s: %w", u.ID, entities.ErrUserNotFound)
	}
	return nil
}

func (r *postgresRepo) DeleteUser(ctx context.Context, id string) error {
	query, args := r.qb.Delete("users").
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("user %s: %w", id, entities.ErrUserNotFound)
	}
	return nil
}

// CountOrdersByUser reports how many orders name the user as buyer or
// seller, for the restrict reference policy.
func (r *postgresRepo) CountOrdersByUser(ctx context.Context, id string) (int, error) {
	query, args := r.qb.Select("count(*)").
		From("orders").
		Where(sq.Or{sq.Eq{"buyer_id": id}, sq.Eq{"seller_id": id}}).
		MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count orders by user: %w", err)
	}
	return count, nil
}
