package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/encomendas/tracking-service/internal/config"
	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/internal/events"
	"github.com/encomendas/tracking-service/pkg/trm"
)

type OrderRepo interface {
	InsertOrder(ctx context.Context, o entities.Order) error
	UpdateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, id string) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	ReplaceOrderProducts(ctx context.Context, orderID string, productIDs []string) error
	AppendOrderStatus(ctx context.Context, orderID string, s entities.StatusEntry) error
}

type ProductReader interface {
	GetProductsByIDs(ctx context.Context, ids []string) ([]entities.Product, error)
}

type UserReader interface {
	GetUserByID(ctx context.Context, id string) (entities.User, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Remove(key string)
}

type EventPublisher interface {
	PublishOrderCreated(e events.OrderCreated)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	products  ProductReader
	users     UserReader
	cache     Cache
	bus       EventPublisher
	policy    config.Policy
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	products ProductReader,
	users UserReader,
	cache Cache,
	bus EventPublisher,
	policy config.Policy,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		products:  products,
		users:     users,
		cache:     cache,
		bus:       bus,
		policy:    policy,
	}
}

// CreateOrder validates the parties, computes the totals from the linked
// products, stores the order with its initial status, and announces the
// creation on the event bus. Any failure rolls the whole write back.
func (s *orderService) CreateOrder(ctx context.Context, id entities.IDSource, in entities.Order) (entities.Order, error) {
	order := in
	order.ID = id.Value()
	order.CreatedAt = time.Now()
	order.Statuses = []entities.StatusEntry{{
		RecordedAt: order.CreatedAt,
		Label:      entities.StatusPreparing,
	}}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.validateParties(ctx, order.BuyerID, order.SellerID); err != nil {
			return err
		}

		price, weight, err := s.computeTotals(ctx, order.ProductIDs)
		if err != nil {
			return err
		}
		order.TotalPrice = price
		order.TotalWeight = weight

		if err := s.repo.InsertOrder(ctx, order); err != nil {
			return err
		}
		if err := s.repo.ReplaceOrderProducts(ctx, order.ID, order.ProductIDs); err != nil {
			return err
		}
		return s.repo.AppendOrderStatus(ctx, order.ID, order.Statuses[0])
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.bus.PublishOrderCreated(events.OrderCreated{
		OrderID:       order.ID,
		OriginAddress: order.OriginAddress,
		CreatedAt:     order.CreatedAt,
	})

	s.logger.Debug("order created", slog.String("order_id", order.ID))
	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	if data, ok := s.cache.Get(id); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err != nil {
			s.logger.Error("failed to unmarshal cached order", slog.String("order_id", id), slog.Any("error", err))
			s.cache.Remove(id)
		} else {
			return order, nil
		}
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	if data, err := order.Marshal(); err == nil {
		s.cache.Set(id, data)
	} else {
		s.logger.Error("failed to marshal order", slog.String("order_id", id), slog.Any("error", err))
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]entities.Order, error) {
	return s.repo.ListOrders(ctx)
}

// UpdateOrder is a full-record replace: addresses, parties and product set
// come from the request, the creation time and status history are kept,
// and the totals are recomputed from scratch.
func (s *orderService) UpdateOrder(ctx context.Context, id string, in entities.Order) (entities.Order, error) {
	var order entities.Order

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.validateParties(ctx, in.BuyerID, in.SellerID); err != nil {
			return err
		}

		price, weight, err := s.computeTotals(ctx, in.ProductIDs)
		if err != nil {
			return err
		}

		order = current
		order.OriginAddress = in.OriginAddress
		order.DestinationAddress = in.DestinationAddress
		order.BuyerID = in.BuyerID
		order.SellerID = in.SellerID
		order.ProductIDs = in.ProductIDs
		order.TotalPrice = price
		order.TotalWeight = weight

		if err := s.repo.UpdateOrder(ctx, order); err != nil {
			return err
		}
		return s.repo.ReplaceOrderProducts(ctx, id, in.ProductIDs)
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.cache.Remove(id)
	s.logger.Debug("order updated", slog.String("order_id", id))
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.DeleteOrder(ctx, id)
	})
	if err != nil {
		return err
	}

	s.cache.Remove(id)
	s.logger.Debug("order deleted", slog.String("order_id", id))
	return nil
}

// AdvanceStatus appends the next label of the Preparing -> InTransit ->
// Delivered progression. Once delivered it reports ErrAlreadyDelivered and
// appends nothing, however often it is called.
func (s *orderService) AdvanceStatus(ctx context.Context, id string) (entities.Order, error) {
	var order entities.Order

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}

		next, ok := current.NextStatus()
		if !ok {
			return fmt.Errorf("order %s: %w", id, entities.ErrAlreadyDelivered)
		}

		entry := entities.StatusEntry{RecordedAt: time.Now(), Label: next}
		if err := s.repo.AppendOrderStatus(ctx, id, entry); err != nil {
			return err
		}

		order = current
		order.Statuses = append(order.Statuses, entry)
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.cache.Remove(id)
	s.logger.Debug("order status advanced", slog.String("order_id", id))
	return order, nil
}

// StatusHistory returns the order's append-only status records.
func (s *orderService) StatusHistory(ctx context.Context, id string) ([]entities.StatusEntry, error) {
	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return order.Statuses, nil
}

// WarmUpCache preloads the most recent orders so the first reads after a
// restart do not all hit postgres.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to warm up cache: %w", err)
	}

	if len(orders) > count {
		orders = orders[:count]
	}
	for _, order := range orders {
		data, err := order.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal order %s: %w", order.ID, err)
		}
		s.cache.Set(order.ID, data)
	}

	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

// computeTotals resolves every product id and sums price and weight. A
// single unresolved id aborts the whole computation; no partial totals.
// Duplicate ids count once per occurrence.
func (s *orderService) computeTotals(ctx context.Context, productIDs []string) (price, weight float64, err error) {
	products, err := s.products.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return 0, 0, err
	}

	byID := make(map[string]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, id := range productIDs {
		p, ok := byID[id]
		if !ok {
			return 0, 0, fmt.Errorf("product %s: %w", id, entities.ErrProductNotFound)
		}
		price += p.Price
		weight += p.Weight
	}
	return price, weight, nil
}

// validateParties checks that buyer and seller exist before any product
// linkage is attempted. When both are missing the error names both ids.
func (s *orderService) validateParties(ctx context.Context, buyerID, sellerID string) error {
	if buyerID == sellerID && !s.policy.AllowSelfTrade {
		return fmt.Errorf("user %s: %w", buyerID, entities.ErrSameBuyerSeller)
	}

	_, buyerErr := s.users.GetUserByID(ctx, buyerID)
	if buyerErr != nil && !errors.Is(buyerErr, entities.ErrUserNotFound) {
		return buyerErr
	}
	_, sellerErr := s.users.GetUserByID(ctx, sellerID)
	if sellerErr != nil && !errors.Is(sellerErr, entities.ErrUserNotFound) {
		return sellerErr
	}

	switch {
	case buyerErr != nil && sellerErr != nil:
		return fmt.Errorf("buyer %s and seller %s: %w", buyerID, sellerID, entities.ErrUserNotFound)
	case buyerErr != nil:
		return fmt.Errorf("buyer %s: %w", buyerID, entities.ErrUserNotFound)
	case sellerErr != nil:
		return fmt.Errorf("seller %s: %w", sellerID, entities.ErrUserNotFound)
	}
	return nil
}
