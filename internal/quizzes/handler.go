package quizzes

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
	protected.HandleFunc("/quizzes/generate", h.Generate).Methods("POST")
	protected.HandleFunc("/quizzes", h.List).Methods("GET")
	protected.HandleFunc("/quizzes/{id:[0-9]+}", h.Get).Methods("GET")
	protected.HandleFunc("/quizzes/{id:[0-9]+}/submit", h.Submit).Methods("POST")
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	quiz, err := h.service.Generate(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, gamification.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Failed to generate quiz"})
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	quizzes, err := h.service.List(userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	quizID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	quiz, err := h.service.Get(userID, quizID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	quizID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.service.Submit(userID, quizID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuizNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
		case errors.Is(err, ErrAlreadyCompleted):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Quiz already completed"})
		case errors.Is(err, gamification.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
