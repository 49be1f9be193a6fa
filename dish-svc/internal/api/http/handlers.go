package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Dishes service.DishServiceInterface
	Users  service.UserServiceInterface
	Orders service.OrderServiceInterface
}

func NewHandler(dishSvc service.DishServiceInterface, userSvc service.UserServiceInterface, orderSvc service.OrderServiceInterface) *Handler {
	return &Handler{
		Dishes: dishSvc,
		Users:  userSvc,
		Orders: orderSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/dishes", h.getDishes).Methods("GET")
	r.HandleFunc("/api/dishes", h.createDish).Methods("POST")
	r.HandleFunc("/api/dishes/{id}", h.getDish).Methods("GET")
	r.HandleFunc("/api/dishes/{id}", h.updateDish).Methods("PUT")
	r.HandleFunc("/api/dishes/{id}", h.deleteDish).Methods("DELETE")
	r.HandleFunc("/api/dishes/{id}/reviews", h.createReview).Methods("POST")

	r.HandleFunc("/api/users", h.getUsers).Methods("GET")
	r.HandleFunc("/api/users", h.createUser).Methods("POST")
	r.HandleFunc("/api/users/{id}", h.getUser).Methods("GET")
	r.HandleFunc("/api/users/{id}", h.updateUser).Methods("PUT")
	r.HandleFunc("/api/users/{id}/addresses", h.createAddress).Methods("POST")
	r.HandleFunc("/api/users/{id}/orders", h.getUserOrders).Methods("GET")
	r.HandleFunc("/api/addresses/{id}", h.deleteAddress).Methods("DELETE")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "dish-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getDishes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	useRegex, _ := strconv.ParseBool(r.URL.Query().Get("regex"))

	dishes, err := h.Dishes.Search(r.Context(), query, useRegex)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var dish domain.Dish
	if !decodeBody(w, r, &dish) {
		return
	}
	dish.ID = 0
	if err := h.Dishes.AddOrUpdate(r.Context(), &dish); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dish)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	dish, err := h.Dishes.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if dish == nil {
		http.Error(w, "Dish not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var dish domain.Dish
	if !decodeBody(w, r, &dish) {
		return
	}
	dish.ID = id
	if err := h.Dishes.AddOrUpdate(r.Context(), &dish); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Dishes.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	dishID, ok := pathID(w, r)
	if !ok {
		return
	}
	var review domain.Review
	if !decodeBody(w, r, &review) {
		return
	}
	review.ID = 0
	review.DishID = dishID
	if err := h.Dishes.AddReview(r.Context(), &review); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if !decodeBody(w, r, &user) {
		return
	}
	user.ID = 0
	if err := h.Users.AddOrUpdate(r.Context(), &user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var user domain.User
	if !decodeBody(w, r, &user) {
		return
	}
	user.ID = id
	if err := h.Users.AddOrUpdate(r.Context(), &user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) createAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}
	var address domain.Address
	if !decodeBody(w, r, &address) {
		return
	}
	address.ID = 0
	if err := h.Users.AddAddress(r.Context(), userID, &address); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, address)
}

func (h *Handler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Users.DeleteAddress(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}
	orders, err := h.Orders.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type orderResponse struct {
	*domain.Order
	QRCodeURL string `json:"qr_code_url"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if !decodeBody(w, r, &order) {
		return
	}
	if err := h.Orders.Place(r.Context(), &order); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderResponse{Order: &order, QRCodeURL: h.Orders.QRLink(order.ID)})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, err := h.Orders.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if order == nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Order: order, QRCodeURL: h.Orders.QRLink(order.ID)})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status domain.OrderStatus `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := h.Orders.UpdateStatus(r.Context(), id, body.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": body.Status})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	qrCode, err := h.Orders.QRCode(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("http: failed to encode response")
	}
}

// writeError maps service errors onto status codes. Constraint messages are
// passed through because they are written for the caller.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrDishNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrConstraint),
		errors.Is(err, domain.ErrInvalidStatusTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error().Err(err).Msg("http: request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
