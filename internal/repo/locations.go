package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/encomendas/tracking-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) CreateLocation(ctx context.Context, l entities.Location) error {
	query, args := r.qb.Insert("locations").
		Columns("id", "recorded_at", "address", "order_id").
		Values(l.ID, l.RecordedAt, l.Address, l.OrderID).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetLocationByID(ctx context.Context, id string) (entities.Location, error) {
	query, args := r.qb.Select("id", "recorded_at", "address", "order_id").
		From("locations").
		Where(sq.Eq{"id": id}).
		MustSql()

	var location Location
	err := r.getContext(ctx, &location, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Location{}, fmt.Errorf("location %s: %w", id, entities.ErrLocationNotFound)
	}
	if err != nil {
		return entities.Location{}, fmt.Errorf("failed to get location: %w", err)
	}
	return LocationToEntity(location), nil
}

func (r *postgresRepo) ListLocations(ctx context.Context) ([]entities.Location, error) {
	query, args := r.qb.Select("id", "recorded_at", "address", "order_id").
		From("locations").
		OrderBy("recorded_at").
		MustSql()

	var locations []Location
	if err := r.selectContext(ctx, &locations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	result := make([]entities.Location, 0, len(locations))
	for _, l := range locations {
		result = append(result, LocationToEntity(l))
	}
	return result, nil
}

// ListLocationsByOrder returns the order's tracking history, oldest first.
func (r *postgresRepo) ListLocationsByOrder(ctx context.Context, orderID string) ([]entities.Location, error) {
	query, args := r.qb.Select("id", "recorded_at", "address", "order_id").
		From("locations").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("recorded_at").
		MustSql()

	var locations []Location
	if err := r.selectContext(ctx, &locations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list locations by order: %w", err)
	}

	result := make([]entities.Location, 0, len(locations))
	for _, l := range locations {
		result = append(result, LocationToEntity(l))
	}
	return result, nil
}

func (r *postgresRepo) UpdateLocation(ctx context.Context, l entities.Location) error {
	query, args := r.qb.Update("locations").
		Set("address", l.Address).
		Set("order_id", l.OrderID).
		Where(sq.Eq{"id": l.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("location %s: %w", l.ID, entities.ErrLocationNotFound)
	}
	return nil
}

func (r *postgresRepo) DeleteLocation(ctx context.Context, id string) error {
	query, args := r.qb.Delete("locations").
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("location %s: %w", id, entities.ErrLocationNotFound)
	}
	return nil
}
