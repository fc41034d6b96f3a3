package gamification

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/studybuddy/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the engine's endpoints on the authed subrouter and
// the scheduler endpoints on the admin subrouter.
func (h *Handler) RegisterRoutes(protected, admin *mux.Router) {
	protected.HandleFunc("/gamification/stats", h.GetStats).Methods("GET")
	protected.HandleFunc("/gamification/badges", h.GetBadges).Methods("GET")
	protected.HandleFunc("/gamification/badges/seen", h.MarkBadgesSeen).Methods("POST")
	protected.HandleFunc("/gamification/leaderboard/{metric}", h.GetLeaderboard).Methods("GET")
	protected.HandleFunc("/gamification/leaderboard/{metric}/rank", h.GetRank).Methods("GET")
	protected.HandleFunc("/gamification/focus-session", h.RecordFocusSession).Methods("POST")

	admin.HandleFunc("/gamification/reset-weekly", h.ResetWeekly).Methods("POST")
	admin.HandleFunc("/gamification/reset-monthly", h.ResetMonthly).Methods("POST")
	admin.HandleFunc("/gamification/stale-streaks", h.GetStaleStreaks).Methods("GET")
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	stats, err := h.service.GetStats(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetBadges(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = "all"
	}
	if filter != "all" && filter != "unlocked" && filter != "new" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid filter"})
		return
	}

	badges, err := h.service.GetBadges(userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

func (h *Handler) MarkBadgesSeen(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	if err := h.service.MarkBadgesSeen(userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	metric := mux.Vars(r)["metric"]

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	entries, err := h.service.Leaderboard(r.Context(), metric, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metric":  NormalizeMetric(metric),
		"entries": entries,
	})
}

func (h *Handler) GetRank(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	metric := mux.Vars(r)["metric"]

	rank, err := h.service.Rank(userID, metric)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// 0 means unranked; clients expect -1 there.
	if rank == 0 {
		rank = -1
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metric": NormalizeMetric(metric),
		"rank":   rank,
	})
}

func (h *Handler) RecordFocusSession(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req models.FocusSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.service.RecordFocusSession(userID, req.DurationMinutes, req.XPEarned)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) ResetWeekly(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.ResetWeeklyXP()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rows_reset": n})
}

func (h *Handler) ResetMonthly(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.ResetMonthlyXP()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rows_reset": n})
}

func (h *Handler) GetStaleStreaks(w http.ResponseWriter, r *http.Request) {
	stale, err := h.service.StaleStreaks(time.Now().UTC())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stale_streaks": stale})
}

func getUserID(r *http.Request) int64 {
	return r.Context().Value("user_id").(int64)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedMetric):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
