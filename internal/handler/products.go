package handler

import (
	"net/http"

	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in ProductIn
	if err := utils.DecodeBody(r, &in); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), entities.GenerateID(), in.Nome, in.Peso, in.Preco)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusCreated)
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]ProductOut, 0, len(products))
	for _, p := range products {
		out = append(out, ProductEntityToJSON(p))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.products.GetProductByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in ProductIn
	if err := utils.DecodeBody(r, &in); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, in.Nome, in.Peso, in.Preco)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteMessage(w, "product deleted", http.StatusOK)
}
