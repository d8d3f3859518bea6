package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/encomendas/tracking-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) CreateProduct(ctx context.Context, p entities.Product) error {
	query, args := r.qb.Insert("products").
		Columns("id", "name", "weight", "price").
		Values(p.ID, p.Name, p.Weight, p.Price).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	query, args := r.qb.Select("id", "name", "weight", "price").
		From("products").
		Where(sq.Eq{"id": id}).
		MustSql()

	var product Product
	err := r.getContext(ctx, &product, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, fmt.Errorf("product %s: %w", id, entities.ErrProductNotFound)
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return ProductToEntity(product), nil
}

// GetProductsByIDs returns the products whose ids appear in ids. Missing
// ids are simply absent from the result; callers decide whether that is an
// error.
func (r *postgresRepo) GetProductsByIDs(ctx context.Context, ids []string) ([]entities.Product, error) {
	if len(ids) == 0 {
		return []entities.Product{}, nil
	}

	query, args := r.qb.Select("id", "name", "weight", "price").
		From("products").
		Where(sq.Eq{"id": ids}).
		MustSql()

	var products []Product
	if err := r.selectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	result := make([]entities.Product, 0, len(products))
	for _, p := range products {
		result = append(result, ProductToEntity(p))
	}
	return result, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	query, args := r.qb.Select("id", "name", "weight", "price").
		From("products").
		OrderBy("name").
		MustSql()

	var products []Product
	if err := r.selectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := make([]entities.Product, 0, len(products))
	for _, p := range products {
		result = append(result, ProductToEntity(p))
	}
	return result, nil
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p entities.Product) error {
	query, args := r.qb.Update("products").
		Set("name", p.Name).
		Set("weight", p.Weight).
		Set("price", p.Price).
		Where(sq.Eq{"id": p.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("product %s: %w", p.ID, entities.ErrProductNotFound)
	}
	return nil
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id string) error {
	query, args := r.qb.Delete("products").
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("product %s: %w", id, entities.ErrProductNotFound)
	}
	return nil
}

// CountOrdersByProduct reports how many order links the product still has,
// for the restrict reference policy.
func (r *postgresRepo) CountOrdersByProduct(ctx context.Context, id string) (int, error) {
	query, args := r.qb.Select("count(*)").
		From("order_products").
		Where(sq.Eq{"product_id": id}).
		MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count orders by product: %w", err)
	}
	return count, nil
}

// DetachProductFromOrders removes the product's association rows. Order
// totals keep their last computed values until the order is next updated.
func (r *postgresRepo) DetachProductFromOrders(ctx context.Context, id string) error {
	query, args := r.qb.Delete("order_products").
		Where(sq.Eq{"product_id": id}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to detach product from orders: %w", err)
	}
	return nil
}
