package health

import (
	"net/http"

	"usersvc/internal/db"
	"usersvc/internal/http/responses"
)

type Handler struct {
	db *db.Client
}

func NewHandler(dbClient *db.Client) *Handler {
	return &Handler{db: dbClient}
}

// Check is liveness only; it does not touch dependencies.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	responses.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// CheckDB pings the connection pool.
func (h *Handler) CheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		responses.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	responses.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
