package progress

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/studybuddy/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/progress", h.List).Methods("GET")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	entries, err := h.store.ListForUser(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"progress": entries})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
