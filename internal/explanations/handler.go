package explanations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/studybuddy/backend/internal/gamification"
	"github.com/studybuddy/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/explanations", h.Explain).Methods("POST")
	protected.HandleFunc("/explanations", h.History).Methods("GET")
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.Explain(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, gamification.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Failed to generate explanation"})
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	entries, err := h.service.History(userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"explanations": entries})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
