package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/services"
)

type UserAdminHandler struct {
	userService services.UserService
}

func NewUserAdminHandler(userService services.UserService) *UserAdminHandler {
	return &UserAdminHandler{
		userService: userService,
	}
}

func (h *UserAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.UserFilter{
		Search: r.URL.Query().Get("search"),
	}
	if role := r.URL.Query().Get("role"); role != "" {
		filter.Role = &role
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	response, err := h.userService.ListUsers(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UserUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userIDParam(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
