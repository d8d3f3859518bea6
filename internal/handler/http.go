package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type UserService interface {
	CreateUser(ctx context.Context, id entities.IDSource, name, email, password string) (entities.User, error)
	GetUserByID(ctx context.Context, id string) (entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	UpdateUser(ctx context.Context, id, name, email, password string) (entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type ProductService interface {
	CreateProduct(ctx context.Context, id entities.IDSource, name string, weight, price float64) (entities.Product, error)
	GetProductByID(ctx context.Context, id string) (entities.Product, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	UpdateProduct(ctx context.Context, id, name string, weight, price float64) (entities.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, id entities.IDSource, in entities.Order) (entities.Order, error)
	GetOrderByID(ctx context.Context, id string) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	UpdateOrder(ctx context.Context, id string, in entities.Order) (entities.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	AdvanceStatus(ctx context.Context, id string) (entities.Order, error)
	StatusHistory(ctx context.Context, id string) ([]entities.StatusEntry, error)
}

type LocationService interface {
	CreateLocation(ctx context.Context, address, orderID string) (entities.Location, error)
	GetLocationByID(ctx context.Context, id string) (entities.Location, error)
	ListLocations(ctx context.Context) ([]entities.Location, error)
	ListLocationsByOrder(ctx context.Context, orderID string) ([]entities.Location, error)
	UpdateLocation(ctx context.Context, id, address, orderID string) (entities.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}

type HTTPHandler struct {
	logger    *slog.Logger
	validate  *validator.Validate
	users     UserService
	products  ProductService
	orders    OrderService
	locations LocationService
}

func NewHTTPHandler(
	logger *slog.Logger,
	users UserService,
	products ProductService,
	orders OrderService,
	locations LocationService,
) *HTTPHandler {
	return &HTTPHandler{
		logger:    logger.With(slog.String("handler", "http")),
		validate:  validator.New(),
		users:     users,
		products:  products,
		orders:    orders,
		locations: locations,
	}
}

// Init mounts the original wire surface: Portuguese resource names, one
// route group per entity.
func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/usuario", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	r.Route("/produto", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/encomenda", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Put("/{id}", h.UpdateOrder)
		r.Delete("/{id}", h.DeleteOrder)
		r.Get("/{id}/localizacao", h.ListOrderLocations)
		r.Get("/{id}/status", h.GetOrderStatus)
		r.Put("/{id}/status", h.AdvanceOrderStatus)
	})

	r.Route("/localizacao", func(r chi.Router) {
		r.Post("/", h.CreateLocation)
		r.Get("/", h.ListLocations)
		r.Get("/{id}", h.GetLocation)
		r.Put("/{id}", h.UpdateLocation)
		r.Delete("/{id}", h.DeleteLocation)
	})
}

// writeServiceError maps domain failures onto status codes. Anything not
// recognized is an internal error and its details stay out of the
// response.
func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrProductNotFound),
		errors.Is(err, entities.ErrOrderNotFound),
		errors.Is(err, entities.ErrLocationNotFound):
		utils.WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, entities.ErrEmailTaken),
		errors.Is(err, entities.ErrUserReferenced),
		errors.Is(err, entities.ErrProductReferenced),
		errors.Is(err, entities.ErrAlreadyDelivered):
		utils.WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, entities.ErrSameBuyerSeller):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
