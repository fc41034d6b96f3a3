package flashcards

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
	protected.HandleFunc("/flashcards/decks", h.CreateDeck).Methods("POST")
	protected.HandleFunc("/flashcards/decks", h.ListDecks).Methods("GET")
	protected.HandleFunc("/flashcards/decks/{id:[0-9]+}", h.GetDeck).Methods("GET")
	protected.HandleFunc("/flashcards/decks/{id:[0-9]+}", h.DeleteDeck).Methods("DELETE")
	protected.HandleFunc("/flashcards/decks/{id:[0-9]+}/generate", h.GenerateCards).Methods("POST")
	protected.HandleFunc("/flashcards/decks/{id:[0-9]+}/review", h.Review).Methods("POST")
}

func (h *Handler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	deck, err := h.service.CreateDeck(userID, req)
	if err != nil {
		if errors.Is(err, gamification.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusCreated, deck)
}

func (h *Handler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	decks, err := h.service.ListDecks(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": decks})
}

func (h *Handler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	deckID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	deck, cards, err := h.service.GetDeck(userID, deckID)
	if err != nil {
		if errors.Is(err, ErrDeckNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Deck not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deck": deck, "cards": cards})
}

func (h *Handler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	deckID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	if err := h.service.DeleteDeck(userID, deckID); err != nil {
		if errors.Is(err, ErrDeckNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Deck not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	deckID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var req models.GenerateCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	cards, err := h.service.GenerateCards(r.Context(), userID, deckID, req)
	if err != nil {
		if errors.Is(err, ErrDeckNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Deck not found"})
			return
		}
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Failed to generate flashcards"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"cards": cards})
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	deckID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var req models.ReviewSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.Review(userID, deckID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDeckNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Deck not found"})
		case errors.Is(err, gamification.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
