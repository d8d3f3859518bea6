package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/encomendas/tracking-service/internal/config"
	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderAPI interface {
	CreateOrder(ctx context.Context, id entities.IDSource, in entities.Order) (entities.Order, error)
	GetOrderByID(ctx context.Context, id string) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	UpdateOrder(ctx context.Context, id string, in entities.Order) (entities.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	AdvanceStatus(ctx context.Context, id string) (entities.Order, error)
	StatusHistory(ctx context.Context, id string) ([]entities.StatusEntry, error)
	WarmUpCache(ctx context.Context, count int) error
}

func newOrderService(t *testing.T, policy config.Policy) (
	*mockOrderRepo, *mockProductReader, *mockUserReader, *mockCache, *mockBus, orderAPI,
) {
	t.Helper()

	repo := new(mockOrderRepo)
	products := new(mockProductReader)
	users := new(mockUserReader)
	cache := new(mockCache)
	bus := new(mockBus)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := service.NewOrderService(logger, stubTxManager{}, repo, products, users, cache, bus, policy)
	return repo, products, users, cache, bus, svc
}

func TestOrderService_CreateOrder(t *testing.T) {
	buyer := entities.User{ID: "buyer-1"}
	seller := entities.User{ID: "seller-1"}

	catalog := []entities.Product{
		{ID: "p1", Name: "book", Weight: 1, Price: 10},
		{ID: "p2", Name: "mug", Weight: 2, Price: 5},
	}

	input := entities.Order{
		OriginAddress:      "Rua A, 1",
		DestinationAddress: "Rua B, 2",
		BuyerID:            "buyer-1",
		SellerID:           "seller-1",
		ProductIDs:         []string{"p1", "p2"},
	}

	t.Run("computes totals and stores the initial status", func(t *testing.T) {
		repo, products, users, _, bus, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		users.On("GetUserByID", mock.Anything, "buyer-1").Return(buyer, nil)
		users.On("GetUserByID", mock.Anything, "seller-1").Return(seller, nil)
		products.On("GetProductsByIDs", mock.Anything, []string{"p1", "p2"}).Return(catalog, nil)
		repo.On("InsertOrder", mock.Anything, mock.Anything).Return(nil)
		repo.On("ReplaceOrderProducts", mock.Anything, "order-1", []string{"p1", "p2"}).Return(nil)
		repo.On("AppendOrderStatus", mock.Anything, "order-1", mock.Anything).Return(nil)
		bus.On("PublishOrderCreated", mock.Anything).Return()

		order, err := svc.CreateOrder(context.Background(), entities.UseID("order-1"), input)
		require.NoError(t, err)

		assert.Equal(t, "order-1", order.ID)
		assert.Equal(t, 15.0, order.TotalPrice)
		assert.Equal(t, 3.0, order.TotalWeight)
		require.Len(t, order.Statuses, 1)
		assert.Equal(t, entities.StatusPreparing, order.Statuses[0].Label)

		bus.AssertCalled(t, "PublishOrderCreated", mock.Anything)
	})

	t.Run("duplicate product id counts twice", func(t *testing.T) {
		repo, products, users, _, bus, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		in := input
		in.ProductIDs = []string{"p1", "p1"}

		users.On("GetUserByID", mock.Anything, mock.Anything).Return(buyer, nil)
		products.On("GetProductsByIDs", mock.Anything, []string{"p1", "p1"}).
			Return([]entities.Product{catalog[0]}, nil)
		repo.On("InsertOrder", mock.Anything, mock.Anything).Return(nil)
		repo.On("ReplaceOrderProducts", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo.On("AppendOrderStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		bus.On("PublishOrderCreated", mock.Anything).Return()

		order, err := svc.CreateOrder(context.Background(), entities.UseID("order-2"), in)
		require.NoError(t, err)

		assert.Equal(t, 20.0, order.TotalPrice)
		assert.Equal(t, 2.0, order.TotalWeight)
	})

	t.Run("unknown product aborts the whole write", func(t *testing.T) {
		repo, products, users, _, bus, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		in := input
		in.ProductIDs = []string{"p1", "missing"}

		users.On("GetUserByID", mock.Anything, mock.Anything).Return(buyer, nil)
		products.On("GetProductsByIDs", mock.Anything, []string{"p1", "missing"}).
			Return([]entities.Product{catalog[0]}, nil)

		_, err := svc.CreateOrder(context.Background(), entities.UseID("order-3"), in)
		assert.ErrorIs(t, err, entities.ErrProductNotFound)
		assert.ErrorContains(t, err, "missing")

		repo.AssertNotCalled(t, "InsertOrder", mock.Anything, mock.Anything)
		bus.AssertNotCalled(t, "PublishOrderCreated", mock.Anything)
	})

	t.Run("unknown buyer is rejected", func(t *testing.T) {
		repo, _, users, _, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		users.On("GetUserByID", mock.Anything, "buyer-1").
			Return(entities.User{}, entities.ErrUserNotFound)
		users.On("GetUserByID", mock.Anything, "seller-1").Return(seller, nil)

		_, err := svc.CreateOrder(context.Background(), entities.UseID("order-4"), input)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
		assert.ErrorContains(t, err, "buyer buyer-1")

		repo.AssertNotCalled(t, "InsertOrder", mock.Anything, mock.Anything)
	})

	t.Run("both parties missing names both ids", func(t *testing.T) {
		_, _, users, _, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		users.On("GetUserByID", mock.Anything, mock.Anything).
			Return(entities.User{}, entities.ErrUserNotFound)

		_, err := svc.CreateOrder(context.Background(), entities.UseID("order-5"), input)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
		assert.ErrorContains(t, err, "buyer-1")
		assert.ErrorContains(t, err, "seller-1")
	})

	t.Run("buyer equal to seller is rejected", func(t *testing.T) {
		_, _, users, _, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		in := input
		in.SellerID = "buyer-1"

		_, err := svc.CreateOrder(context.Background(), entities.UseID("order-6"), in)
		assert.ErrorIs(t, err, entities.ErrSameBuyerSeller)

		users.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("self trade allowed by policy", func(t *testing.T) {
		repo, products, users, _, bus, svc := newOrderService(t, config.Policy{
			Reference:      config.PolicyRestrict,
			AllowSelfTrade: true,
		})

		in := input
		in.SellerID = "buyer-1"

		users.On("GetUserByID", mock.Anything, "buyer-1").Return(buyer, nil)
		products.On("GetProductsByIDs", mock.Anything, mock.Anything).Return(catalog, nil)
		repo.On("InsertOrder", mock.Anything, mock.Anything).Return(nil)
		repo.On("ReplaceOrderProducts", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo.On("AppendOrderStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		bus.On("PublishOrderCreated", mock.Anything).Return()

		_, err := svc.CreateOrder(context.Background(), entities.UseID("order-7"), in)
		assert.NoError(t, err)
	})
}

func TestOrderService_GetOrderByID(t *testing.T) {
	validOrder := entities.Order{ID: "order-1", TotalPrice: 15}
	validData, err := validOrder.Marshal()
	require.NoError(t, err)

	t.Run("served from cache", func(t *testing.T) {
		repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		cache.On("Get", "order-1").Return(validData, true).Once()

		got, err := svc.GetOrderByID(context.Background(), "order-1")
		require.NoError(t, err)
		assert.Equal(t, validOrder, got)

		repo.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss falls back to repo and fills the cache", func(t *testing.T) {
		repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		cache.On("Get", "order-1").Return(nil, false).Once()
		repo.On("GetOrderByID", mock.Anything, "order-1").Return(validOrder, nil).Once()
		cache.On("Set", "order-1", validData).Return().Once()

		got, err := svc.GetOrderByID(context.Background(), "order-1")
		require.NoError(t, err)
		assert.Equal(t, validOrder, got)

		cache.AssertExpectations(t)
	})

	t.Run("broken cache entry is dropped and reread", func(t *testing.T) {
		repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		cache.On("Get", "order-1").Return([]byte("broken"), true).Once()
		cache.On("Remove", "order-1").Return().Once()
		repo.On("GetOrderByID", mock.Anything, "order-1").Return(validOrder, nil).Once()
		cache.On("Set", "order-1", validData).Return().Once()

		got, err := svc.GetOrderByID(context.Background(), "order-1")
		require.NoError(t, err)
		assert.Equal(t, validOrder, got)

		cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		cache.On("Get", "missing").Return(nil, false).Once()
		repo.On("GetOrderByID", mock.Anything, "missing").
			Return(entities.Order{}, entities.ErrOrderNotFound).Once()

		_, err := svc.GetOrderByID(context.Background(), "missing")
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}

func TestOrderService_AdvanceStatus(t *testing.T) {
	t.Run("preparing advances to in transit", func(t *testing.T) {
		repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		current := entities.Order{
			ID: "order-1",
			Statuses: []entities.StatusEntry{
				{RecordedAt: time.Now().Add(-time.Hour), Label: entities.StatusPreparing},
			},
		}

		repo.On("GetOrderByID", mock.Anything, "order-1").Return(current, nil).Once()
		repo.On("AppendOrderStatus", mock.Anything, "order-1", mock.MatchedBy(func(s entities.StatusEntry) bool {
			return s.Label == entities.StatusInTransit
		})).Return(nil).Once()
		cache.On("Remove", "order-1").Return().Once()

		order, err := svc.AdvanceStatus(context.Background(), "order-1")
		require.NoError(t, err)

		require.Len(t, order.Statuses, 2)
		assert.Equal(t, entities.StatusInTransit, order.Statuses[1].Label)
	})

	t.Run("delivered order advances no further", func(t *testing.T) {
		repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		current := entities.Order{
			ID: "order-1",
			Statuses: []entities.StatusEntry{
				{Label: entities.StatusPreparing},
				{Label: entities.StatusInTransit},
				{Label: entities.StatusDelivered},
			},
		}

		repo.On("GetOrderByID", mock.Anything, "order-1").Return(current, nil)

		_, err := svc.AdvanceStatus(context.Background(), "order-1")
		assert.ErrorIs(t, err, entities.ErrAlreadyDelivered)

		repo.AssertNotCalled(t, "AppendOrderStatus", mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Remove", mock.Anything)
	})
}

func TestOrderService_UpdateOrder(t *testing.T) {
	createdAt := time.Now().Add(-24 * time.Hour)
	history := []entities.StatusEntry{{RecordedAt: createdAt, Label: entities.StatusPreparing}}

	current := entities.Order{
		ID:                 "order-1",
		CreatedAt:          createdAt,
		OriginAddress:      "old origin",
		DestinationAddress: "old destination",
		BuyerID:            "buyer-1",
		SellerID:           "seller-1",
		ProductIDs:         []string{"p1"},
		Statuses:           history,
	}

	t.Run("recomputes totals and keeps the history", func(t *testing.T) {
		repo, products, users, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		in := entities.Order{
			OriginAddress:      "new origin",
			DestinationAddress: "new destination",
			BuyerID:            "buyer-1",
			SellerID:           "seller-1",
			ProductIDs:         []string{"p2"},
		}

		repo.On("GetOrderByID", mock.Anything, "order-1").Return(current, nil).Once()
		users.On("GetUserByID", mock.Anything, mock.Anything).Return(entities.User{}, nil)
		products.On("GetProductsByIDs", mock.Anything, []string{"p2"}).
			Return([]entities.Product{{ID: "p2", Weight: 2, Price: 5}}, nil)
		repo.On("UpdateOrder", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("ReplaceOrderProducts", mock.Anything, "order-1", []string{"p2"}).Return(nil).Once()
		cache.On("Remove", "order-1").Return().Once()

		order, err := svc.UpdateOrder(context.Background(), "order-1", in)
		require.NoError(t, err)

		assert.Equal(t, "new origin", order.OriginAddress)
		assert.Equal(t, 5.0, order.TotalPrice)
		assert.Equal(t, 2.0, order.TotalWeight)
		assert.Equal(t, createdAt, order.CreatedAt)
		assert.Equal(t, history, order.Statuses)
	})

	t.Run("unknown order", func(t *testing.T) {
		repo, _, _, _, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

		repo.On("GetOrderByID", mock.Anything, "missing").
			Return(entities.Order{}, entities.ErrOrderNotFound)

		_, err := svc.UpdateOrder(context.Background(), "missing", current)
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

	repo.On("DeleteOrder", mock.Anything, "order-1").Return(nil).Once()
	cache.On("Remove", "order-1").Return().Once()

	require.NoError(t, svc.DeleteOrder(context.Background(), "order-1"))
	cache.AssertExpectations(t)
}

func TestOrderService_StatusHistory(t *testing.T) {
	repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

	order := entities.Order{
		ID: "order-1",
		Statuses: []entities.StatusEntry{
			{Label: entities.StatusPreparing},
			{Label: entities.StatusInTransit},
		},
	}

	cache.On("Get", "order-1").Return(nil, false)
	repo.On("GetOrderByID", mock.Anything, "order-1").Return(order, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return()

	history, err := svc.StatusHistory(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, order.Statuses, history)
}

func TestOrderService_WarmUpCache(t *testing.T) {
	repo, _, _, cache, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

	orders := []entities.Order{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	repo.On("ListOrders", mock.Anything).Return(orders, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return()

	require.NoError(t, svc.WarmUpCache(context.Background(), 2))

	cache.AssertNumberOfCalls(t, "Set", 2)
}

func TestOrderService_ListOrders(t *testing.T) {
	repo, _, _, _, _, svc := newOrderService(t, config.Policy{Reference: config.PolicyRestrict})

	wantErr := errors.New("db error")
	repo.On("ListOrders", mock.Anything).Return([]entities.Order(nil), wantErr)

	_, err := svc.ListOrders(context.Background())
	assert.ErrorIs(t, err, wantErr)
}
