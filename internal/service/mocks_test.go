package service_test

import (
	"context"

	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/internal/events"
	"github.com/encomendas/tracking-service/pkg/trm"

	"github.com/stretchr/testify/mock"
)

// stubTxManager runs callbacks inline, without a database.
type stubTxManager struct{}

func (stubTxManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, nopTx{}, nil
}

func (stubTxManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return callback(ctx)
}

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) InsertOrder(ctx context.Context, o entities.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) UpdateOrder(ctx context.Context, o entities.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOrderRepo) ReplaceOrderProducts(ctx context.Context, orderID string, productIDs []string) error {
	args := m.Called(ctx, orderID, productIDs)
	return args.Error(0)
}

func (m *mockOrderRepo) AppendOrderStatus(ctx context.Context, orderID string, s entities.StatusEntry) error {
	args := m.Called(ctx, orderID, s)
	return args.Error(0)
}

type mockProductReader struct {
	mock.Mock
}

func (m *mockProductReader) GetProductsByIDs(ctx context.Context, ids []string) ([]entities.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]entities.Product), args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.User), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(key string) ([]byte, bool) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *mockCache) Set(key string, value []byte) {
	m.Called(key, value)
}

func (m *mockCache) Remove(key string) {
	m.Called(key)
}

type mockBus struct {
	mock.Mock
}

func (m *mockBus) PublishOrderCreated(e events.OrderCreated) {
	m.Called(e)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u entities.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, u entities.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) CountOrdersByUser(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) CreateProduct(ctx context.Context, p entities.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockProductRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *mockProductRepo) UpdateProduct(ctx context.Context, p entities.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepo) CountOrdersByProduct(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockProductRepo) DetachProductFromOrders(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockLocationRepo struct {
	mock.Mock
}

func (m *mockLocationRepo) CreateLocation(ctx context.Context, l entities.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockLocationRepo) GetLocationByID(ctx context.Context, id string) (entities.Location, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Location), args.Error(1)
}

func (m *mockLocationRepo) ListLocations(ctx context.Context) ([]entities.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Location), args.Error(1)
}

func (m *mockLocationRepo) ListLocationsByOrder(ctx context.Context, orderID string) ([]entities.Location, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]entities.Location), args.Error(1)
}

func (m *mockLocationRepo) UpdateLocation(ctx context.Context, l entities.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockLocationRepo) DeleteLocation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockOrderChecker struct {
	mock.Mock
}

func (m *mockOrderChecker) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}
