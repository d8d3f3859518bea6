package handler

import (
	"net/http"

	"github.com/encomendas/tracking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func (h *HTTPHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var in LocationIn
	if err := utils.DecodeBody(r, &in); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	location, err := h.locations.CreateLocation(r.Context(), in.Endereco, in.IDEncomenda)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, LocationEntityToJSON(location), http.StatusCreated)
}

func (h *HTTPHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locations.ListLocations(r.Context())
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

func (h *HTTPHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	location, err := h.locations.GetLocationByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, LocationEntityToJSON(location), http.StatusOK)
}

func (h *HTTPHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in LocationIn
	if err := utils.DecodeBody(r, &in); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	location, err := h.locations.UpdateLocation(r.Context(), id, in.Endereco, in.IDEncomenda)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, LocationEntityToJSON(location), http.StatusOK)
}

func (h *HTTPHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.locations.DeleteLocation(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteMessage(w, "location deleted", http.StatusOK)
}
