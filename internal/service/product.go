package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/encomendas/tracking-service/internal/config"
	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/pkg/trm"
)

type ProductRepo interface {
	CreateProduct(ctx context.Context, p entities.Product) error
	GetProductByID(ctx context.Context, id string) (entities.Product, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	UpdateProduct(ctx context.Context, p entities.Product) error
	DeleteProduct(ctx context.Context, id string) error
	CountOrdersByProduct(ctx context.Context, id string) (int, error)
	DetachProductFromOrders(ctx context.Context, id string) error
}

type productService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      ProductRepo
	policy    config.Policy
}

func NewProductService(logger *slog.Logger, txManager trm.Manager, repo ProductRepo, policy config.Policy) *productService {
	return &productService{
		logger:    logger.With(slog.String("service", "product")),
		txManager: txManager,
		repo:      repo,
		policy:    policy,
	}
}

func (s *productService) CreateProduct(ctx context.Context, id entities.IDSource, name string, weight, price float64) (entities.Product, error) {
	product := entities.Product{
		ID:     id.Value(),
		Name:   name,
		Weight: weight,
		Price:  price,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.CreateProduct(ctx, product)
	})
	if err != nil {
		return entities.Product{}, err
	}

	s.logger.Debug("product created", slog.String("product_id", product.ID))
	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return s.repo.ListProducts(ctx)
}

// UpdateProduct replaces the whole record. Totals of orders linking the
// product are not touched here; they stay at their last computed values
// until the order itself is updated.
func (s *productService) UpdateProduct(ctx context.Context, id, name string, weight, price float64) (entities.Product, error) {
	product := entities.Product{
		ID:     id,
		Name:   name,
		Weight: weight,
		Price:  price,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.UpdateProduct(ctx, product)
	})
	if err != nil {
		return entities.Product{}, err
	}

	s.logger.Debug("product updated", slog.String("product_id", id))
	return product, nil
}

// DeleteProduct removes the product. Restrict rejects the delete while
// orders still link it; detach drops the links first, in the same
// transaction.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		switch s.policy.Reference {
		case config.PolicyRestrict:
			count, err := s.repo.CountOrdersByProduct(ctx, id)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("product %s: %w", id, entities.ErrProductReferenced)
			}
		case config.PolicyDetach:
			if err := s.repo.DetachProductFromOrders(ctx, id); err != nil {
				return err
			}
		}
		return s.repo.DeleteProduct(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("product deleted", slog.String("product_id", id))
	return nil
}
