package handler

import (
	"net/http"

	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func (h *HTTPHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in UserIn
	if err := utils.DecodeBody(r, &in); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), entities.GenerateID(), in.Nome, in.Email, in.Senha)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, UserEntityToJSON(user), http.StatusCreated)
}

func (h *HTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]UserOut, 0, len(users))
	for _, u := range users {
		out = append(out, UserEntityToJSON(u))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *HTTPHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, UserEntityToJSON(user), http.StatusOK)
}

func (h *HTTPHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in UserIn
	if err := utils.DecodeBody(r, &in); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, in.Nome, in.Email, in.Senha)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, UserEntityToJSON(user), http.StatusOK)
}

func (h *HTTPHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteMessage(w, "user deleted", http.StatusOK)
}
