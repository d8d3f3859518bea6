package repo

import (
	"time"

	"github.com/encomendas/tracking-service/internal/entities"
)

type User struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

type Product struct {
	ID     string  `db:"id"`
	Name   string  `db:"name"`
	Weight float64 `db:"weight"`
	Price  float64 `db:"price"`
}

type Order struct {
	ID                 string    `db:"id"`
	CreatedAt          time.Time `db:"created_at"`
	OriginAddress      string    `db:"origin_address"`
	DestinationAddress string    `db:"destination_address"`
	BuyerID            string    `db:"buyer_id"`
	SellerID           string    `db:"seller_id"`
	TotalPrice         float64   `db:"total_price"`
	TotalWeight        float64   `db:"total_weight"`
}

type OrderProduct struct {
	OrderID   string `db:"order_id"`
	ProductID string `db:"product_id"`
}

type OrderStatus struct {
	OrderID    string    `db:"order_id"`
	RecordedAt time.Time `db:"recorded_at"`
	Label      string    `db:"label"`
}

type Location struct {
	ID         string    `db:"id"`
	RecordedAt time.Time `db:"recorded_at"`
	Address    string    `db:"address"`
	OrderID    string    `db:"order_id"`
}

func UserToEntity(u User) entities.User {
	return entities.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{
		ID:     p.ID,
		Name:   p.Name,
		Weight: p.Weight,
		Price:  p.Price,
	}
}

func OrderToEntity(o Order, products []OrderProduct, statuses []OrderStatus) entities.Order {
	order := entities.Order{
		ID:                 o.ID,
		CreatedAt:          o.CreatedAt,
		OriginAddress:      o.OriginAddress,
		DestinationAddress: o.DestinationAddress,
		BuyerID:            o.BuyerID,
		SellerID:           o.SellerID,
		TotalPrice:         o.TotalPrice,
		TotalWeight:        o.TotalWeight,
	}

	if len(products) > 0 {
		order.ProductIDs = make([]string, 0, len(products))
		for _, p := range products {
			order.ProductIDs = append(order.ProductIDs, p.ProductID)
		}
	}

	if len(statuses) > 0 {
		order.Statuses = make([]entities.StatusEntry, 0, len(statuses))
		for _, s := range statuses {
			order.Statuses = append(order.Statuses, entities.StatusEntry{
				RecordedAt: s.RecordedAt,
				Label:      s.Label,
			})
		}
	}

	return order
}

func LocationToEntity(l Location) entities.Location {
	return entities.Location{
		ID:         l.ID,
		RecordedAt: l.RecordedAt,
		Address:    l.Address,
		OrderID:    l.OrderID,
	}
}
