package handler_test

import (
	"context"

	"github.com/encomendas/tracking-service/internal/entities"

	"github.com/stretchr/testify/mock"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, id entities.IDSource, name, email, password string) (entities.User, error) {
	args := m.Called(ctx, id, name, email, password)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id, name, email, password string) (entities.User, error) {
	args := m.Called(ctx, id, name, email, password)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) CreateProduct(ctx context.Context, id entities.IDSource, name string, weight, price float64) (entities.Product, error) {
	args := m.Called(ctx, id, name, weight, price)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockProductService) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, id, name string, weight, price float64) (entities.Product, error) {
	args := m.Called(ctx, id, name, weight, price)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) CreateOrder(ctx context.Context, id entities.IDSource, in entities.Order) (entities.Order, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]entities.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderService) UpdateOrder(ctx context.Context, id string, in entities.Order) (entities.Order, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOrderService) AdvanceStatus(ctx context.Context, id string) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) StatusHistory(ctx context.Context, id string) ([]entities.StatusEntry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]entities.StatusEntry), args.Error(1)
}

type mockLocationService struct {
	mock.Mock
}

func (m *mockLocationService) CreateLocation(ctx context.Context, address, orderID string) (entities.Location, error) {
	args := m.Called(ctx, address, orderID)
	return args.Get(0).(entities.Location), args.Error(1)
}

func (m *mockLocationService) GetLocationByID(ctx context.Context, id string) (entities.Location, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Location), args.Error(1)
}

func (m *mockLocationService) ListLocations(ctx context.Context) ([]entities.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Location), args.Error(1)
}

func (m *mockLocationService) ListLocationsByOrder(ctx context.Context, orderID string) ([]entities.Location, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]entities.Location), args.Error(1)
}

func (m *mockLocationService) UpdateLocation(ctx context.Context, id, address, orderID string) (entities.Location, error) {
	args := m.Called(ctx, id, address, orderID)
	return args.Get(0).(entities.Location), args.Error(1)
}

func (m *mockLocationService) DeleteLocation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
