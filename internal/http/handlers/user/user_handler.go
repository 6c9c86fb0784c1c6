package user

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appuser "usersvc/internal/app/user"
	"usersvc/internal/http/binding"
	"usersvc/internal/http/responses"
	"usersvc/internal/logging"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	// Cap on per_page so a single request cannot drag the whole table.
	maxPerPage = 100
)

type Handler struct {
	service appuser.Service
	logger  logging.Logger
}

func NewHandler(service appuser.Service, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "user_http_handler"),
	}
}

// List GET /users?page=1&per_page=10
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, perPage, ok := parsePagination(w, r)
	if !ok {
		return
	}

	out, err := h.service.List(ctx, appuser.ListUsersInput{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		responses.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	responses.WriteJSON(w, http.StatusOK, out)
}

// Create POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input CreateUserRequest
	if !binding.BindAndValidate(w, r, &input) {
		return
	}

	dto, err := h.service.Create(ctx, appuser.CreateUserInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		if appuser.IsConflict(err) {
			responses.WriteError(w, http.StatusConflict, "email already taken")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		responses.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	responses.WriteJSON(w, http.StatusCreated, dto)
}

// GetByID GET /users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	dto, err := h.service.GetById(ctx, id)
	if err != nil {
		if appuser.IsNotFound(err) {
			responses.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to get user", "error", err, "id", id)
		responses.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	responses.WriteJSON(w, http.StatusOK, dto)
}

// Update PUT /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var input UpdateUserRequest
	if !binding.BindAndValidate(w, r, &input) {
		return
	}

	dto, err := h.service.Update(ctx, appuser.UpdateUserInput{
		ID:    id,
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		if appuser.IsNotFound(err) {
			responses.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		if appuser.IsConflict(err) {
			responses.WriteError(w, http.StatusConflict, "email already taken")
			return
		}
		h.logger.Error("failed to update user", "error", err, "id", id)
		responses.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	responses.WriteJSON(w, http.StatusOK, dto)
}

// Delete DELETE /users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		if appuser.IsNotFound(err) {
			responses.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to delete user", "error", err, "id", id)
		responses.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		responses.WriteBadRequest(w, "invalid user id")
		return 0, false
	}
	return id, true
}

// parsePagination applies defaults for absent values, rejects malformed
// ones, clamps non-positive values to the defaults and caps per_page.
func parsePagination(w http.ResponseWriter, r *http.Request) (page, perPage int, ok bool) {
	page = defaultPage
	perPage = defaultPerPage

	q := r.URL.Query()
	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			responses.WriteBadRequest(w, "invalid page")
			return 0, 0, false
		}
		if v > 0 {
			page = v
		}
	}
	if raw := q.Get("per_page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			responses.WriteBadRequest(w, "invalid per_page")
			return 0, 0, false
		}
		if v > 0 {
			perPage = v
		}
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return page, perPage, true
}
