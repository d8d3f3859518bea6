package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/internal/events"
	"github.com/encomendas/tracking-service/pkg/trm"
)

type LocationRepo interface {
	CreateLocation(ctx context.Context, l entities.Location) error
	GetLocationByID(ctx context.Context, id string) (entities.Location, error)
	ListLocations(ctx context.Context) ([]entities.Location, error)
	ListLocationsByOrder(ctx context.Context, orderID string) ([]entities.Location, error)
	UpdateLocation(ctx context.Context, l entities.Location) error
	DeleteLocation(ctx context.Context, id string) error
}

// OrderChecker verifies the owning order exists before a location is
// attached to it.
type OrderChecker interface {
	GetOrderByID(ctx context.Context, id string) (entities.Order, error)
}

type locationService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      LocationRepo
	orders    OrderChecker
}

func NewLocationService(logger *slog.Logger, txManager trm.Manager, repo LocationRepo, orders OrderChecker) *locationService {
	return &locationService{
		logger:    logger.With(slog.String("service", "location")),
		txManager: txManager,
		repo:      repo,
		orders:    orders,
	}
}

// CreateLocation appends a tracking entry to an order's history, stamped
// with the current time. The order must exist.
func (s *locationService) CreateLocation(ctx context.Context, address, orderID string) (entities.Location, error) {
	return s.record(ctx, entities.Location{
		ID:         entities.GenerateID().Value(),
		RecordedAt: time.Now(),
		Address:    address,
		OrderID:    orderID,
	})
}

func (s *locationService) record(ctx context.Context, location entities.Location) (entities.Location, error) {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.orders.GetOrderByID(ctx, location.OrderID); err != nil {
			return err
		}
		return s.repo.CreateLocation(ctx, location)
	})
	if err != nil {
		return entities.Location{}, err
	}

	s.logger.Debug("location recorded",
		slog.String("location_id", location.ID),
		slog.String("order_id", location.OrderID),
	)
	return location, nil
}

func (s *locationService) GetLocationByID(ctx context.Context, id string) (entities.Location, error) {
	return s.repo.GetLocationByID(ctx, id)
}

func (s *locationService) ListLocations(ctx context.Context) ([]entities.Location, error) {
	return s.repo.ListLocations(ctx)
}

// ListLocationsByOrder returns an order's tracking history, oldest entry
// first. An unknown order is an error, not an empty history.
func (s *locationService) ListLocationsByOrder(ctx context.Context, orderID string) ([]entities.Location, error) {
	if _, err := s.orders.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListLocationsByOrder(ctx, orderID)
}

func (s *locationService) UpdateLocation(ctx context.Context, id, address, orderID string) (entities.Location, error) {
	var location entities.Location

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetLocationByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.orders.GetOrderByID(ctx, orderID); err != nil {
			return err
		}

		location = current
		location.Address = address
		location.OrderID = orderID
		return s.repo.UpdateLocation(ctx, location)
	})
	if err != nil {
		return entities.Location{}, err
	}

	s.logger.Debug("location updated", slog.String("location_id", id))
	return location, nil
}

func (s *locationService) DeleteLocation(ctx context.Context, id string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.DeleteLocation(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("location deleted", slog.String("location_id", id))
	return nil
}

// HandleOrderCreated seeds the tracking history of a fresh order with its
// origin address. Wired to the in-process event bus.
func (s *locationService) HandleOrderCreated(ctx context.Context, e events.OrderCreated) error {
	_, err := s.record(ctx, entities.Location{
		ID:         entities.GenerateID().Value(),
		RecordedAt: e.CreatedAt,
		Address:    e.OriginAddress,
		OrderID:    e.OrderID,
	})
	if err != nil {
		return fmt.Errorf("failed to record initial location for order %s: %w", e.OrderID, err)
	}
	return nil
}
