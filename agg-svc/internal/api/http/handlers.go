package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"overcooked-restaurant/agg-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

type Handler struct {
	Ratings service.RatingReader
}

func NewHandler(ratings service.RatingReader) *Handler {
	return &Handler{Ratings: ratings}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/dishes/{id}/rating", h.getDishRating).Methods("GET")
	r.HandleFunc("/api/ratings/top", h.getTopDishes).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "agg-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getDishRating(w http.ResponseWriter, r *http.Request) {
	dishID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || dishID <= 0 {
		http.Error(w, "Invalid dish ID", http.StatusBadRequest)
		return
	}

	rating, err := h.Ratings.GetDishRating(r.Context(), dishID)
	if err != nil {
		log.Error().Err(err).Int("dish_id", dishID).Msg("http: failed to read rating")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if rating == nil {
		http.Error(w, "No ratings for dish", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

func (h *Handler) getTopDishes(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxTopLimit)
	}

	ratings, err := h.Ratings.TopDishes(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("http: failed to read leaderboard")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("http: failed to encode response")
	}
}
