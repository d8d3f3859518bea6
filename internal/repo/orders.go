package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/encomendas/tracking-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) InsertOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(
			"id", "created_at", "origin_address", "destination_address",
			"buyer_id", "seller_id", "total_price", "total_weight",
		).
		Values(
			o.ID, o.CreatedAt, o.OriginAddress, o.DestinationAddress,
			o.BuyerID, o.SellerID, o.TotalPrice, o.TotalWeight,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) UpdateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Update("orders").
		Set("origin_address", o.OriginAddress).
		Set("destination_address", o.DestinationAddress).
		Set("buyer_id", o.BuyerID).
		Set("seller_id", o.SellerID).
		Set("total_price", o.TotalPrice).
		Set("total_weight", o.TotalWeight).
		Where(sq.Eq{"id": o.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("order %s: %w", o.ID, entities.ErrOrderNotFound)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	query, args := r.qb.Select(
		"id", "created_at", "origin_address", "destination_address",
		"buyer_id", "seller_id", "total_price", "total_weight").
		From("orders").
		Where(sq.Eq{"id": id}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, fmt.Errorf("order %s: %w", id, entities.ErrOrderNotFound)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	query, args = r.qb.Select("order_id", "product_id").
		From("order_products").
		Where(sq.Eq{"order_id": id}).
		MustSql()

	var products []OrderProduct
	if err := r.selectContext(ctx, &products, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order products: %w", err)
	}

	query, args = r.qb.Select("order_id", "recorded_at", "label").
		From("order_statuses").
		Where(sq.Eq{"order_id": id}).
		OrderBy("recorded_at").
		MustSql()

	var statuses []OrderStatus
	if err := r.selectContext(ctx, &statuses, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order statuses: %w", err)
	}

	return OrderToEntity(order, products, statuses), nil
}

func (r *postgresRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	query, args := r.qb.Select(
		"id", "created_at", "origin_address", "destination_address",
		"buyer_id", "seller_id", "total_price", "total_weight").
		From("orders").
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	query, args = r.qb.Select("order_id", "product_id").
		From("order_products").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var products []OrderProduct
	if err := r.selectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order products: %w", err)
	}
	productMap := make(map[string][]OrderProduct, len(ids))
	for _, p := range products {
		productMap[p.OrderID] = append(productMap[p.OrderID], p)
	}

	query, args = r.qb.Select("order_id", "recorded_at", "label").
		From("order_statuses").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("recorded_at").
		MustSql()

	var statuses []OrderStatus
	if err := r.selectContext(ctx, &statuses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order statuses: %w", err)
	}
	statusMap := make(map[string][]OrderStatus, len(ids))
	for _, s := range statuses {
		statusMap[s.OrderID] = append(statusMap[s.OrderID], s)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, productMap[o.ID], statusMap[o.ID]))
	}
	return result, nil
}

// DeleteOrder removes the order together with its owned rows: product
// links, status history and locations.
func (r *postgresRepo) DeleteOrder(ctx context.Context, id string) error {
	for _, table := range []string{"order_products", "order_statuses", "locations"} {
		query, args := r.qb.Delete(table).
			Where(sq.Eq{"order_id": id}).
			MustSql()
		if _, err := r.execContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	query, args := r.qb.Delete("orders").
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("order %s: %w", id, entities.ErrOrderNotFound)
	}
	return nil
}

// ReplaceOrderProducts rewrites the order's product links. Duplicate ids
// are kept: a product listed twice counts twice in the totals.
func (r *postgresRepo) ReplaceOrderProducts(ctx context.Context, orderID string, productIDs []string) error {
	query, args := r.qb.Delete("order_products").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear order products: %w", err)
	}

	if len(productIDs) == 0 {
		return nil
	}

	q := r.qb.Insert("order_products").Columns("order_id", "product_id")
	for _, pid := range productIDs {
		q = q.Values(orderID, pid)
	}

	query, args = q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order products: %w", err)
	}
	return nil
}

func (r *postgresRepo) AppendOrderStatus(ctx context.Context, orderID string, s entities.StatusEntry) error {
	query, args := r.qb.Insert("order_statuses").
		Columns("order_id", "recorded_at", "label").
		Values(orderID, s.RecordedAt, s.Label).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append order status: %w", err)
	}
	return nil
}
