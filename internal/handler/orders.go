package handler

import (
	"net/http"

	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in OrderIn
	if err := utils.DecodeBody(r, &in); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), entities.UseID(in.IDEncomenda), OrderJSONToEntity(in))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]OrderOut, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderEntityToJSON(o))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.orders.GetOrderByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in OrderIn
	if err := utils.DecodeBody(r, &in); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.UpdateOrder(r.Context(), id, OrderJSONToEntity(in))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteMessage(w, "order deleted", http.StatusOK)
}

func (h *HTTPHandler) ListOrderLocations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	locations, err := h.locations.ListLocationsByOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]LocationOut, 0, len(locations))
	for _, l := range locations {
		out = append(out, LocationEntityToJSON(l))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *HTTPHandler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	history, err := h.orders.StatusHistory(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, StatusHistoryToJSON(history), http.StatusOK)
}

// AdvanceOrderStatus moves the order one step along its lifecycle. A
// delivered order cannot advance further.
func (h *HTTPHandler) AdvanceOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.orders.AdvanceStatus(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}
