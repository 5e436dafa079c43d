package transport

import (
	"net/http"

	"amalkitchen-be/internal/identity"
	"amalkitchen-be/internal/middleware"
	"amalkitchen-be/internal/order"
	"amalkitchen-be/internal/utils"
)

type checkoutRequest struct {
	CustomerName  string `json:"customer_name"`
	PhoneNumber   string `json:"phone_number"`
	CellNumber    string `json:"cell_number"`
	Email         string `json:"email"`
	Region        string `json:"region"`
	PaymentMethod string `json:"payment_method"`
}

// Checkout submits the guest order built from the caller's cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	crt, err := h.loadCart(w, r)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	created, err := h.orders.Checkout(r.Context(), crt, order.CheckoutInput{
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		CellNumber:    req.CellNumber,
		Email:         req.Email,
		Region:        req.Region,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeOrderError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

type walkInRequest struct {
	checkoutRequest
	Branch string       `json:"branch"`
	Items  []order.Item `json:"items"`
}

// CreateWalkIn is the staff-assisted variant. The branch defaults to the
// signed-in manager's branch; admins may name any branch.
func (h *Handler) CreateWalkIn(w http.ResponseWriter, r *http.Request) {
	var req walkInRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, _ := middleware.CurrentUser(r.Context())
	branch := req.Branch
	if u != nil && u.Role == identity.RoleManager && u.Branch != "" {
		branch = u.Branch
	}

	created, err := h.orders.CreateWalkIn(r.Context(), order.WalkInInput{
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		CellNumber:    req.CellNumber,
		Email:         req.Email,
		Region:        req.Region,
		PaymentMethod: req.PaymentMethod,
		Branch:        branch,
		Items:         req.Items,
	})
	if err != nil {
		writeOrderError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// ListOrders serves the staff dashboards. Managers are pinned to their
// own branch regardless of the query string.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{
		Branch: r.URL.Query().Get("branch"),
		Email:  r.URL.Query().Get("email"),
		Status: order.Status(r.URL.Query().Get("status")),
	}

	if u, _ := middleware.CurrentUser(r.Context()); u != nil && u.Role == identity.RoleManager {
		filter.Branch = u.Branch
	}

	orders, err := h.orders.ListOrders(r.Context(), filter)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	utils.WriteJSON(w, orders, http.StatusOK)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	utils.WriteJSON(w, o, http.StatusOK)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, order.Status(body.Status)); err != nil {
		writeOrderError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]string{"status": body.Status}, http.StatusOK)
}

func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var body struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orders.SetPaymentStatus(r.Context(), id, order.PaymentStatus(body.PaymentStatus)); err != nil {
		writeOrderError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]string{"payment_status": body.PaymentStatus}, http.StatusOK)
}

// AddOrderItems appends lines to an existing order and returns it with
// the recomputed total.
func (h *Handler) AddOrderItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var body struct {
		Items []order.Item `json:"items"`
	}
	if err := decodeJSON(r, &body); err != nil || len(body.Items) == 0 {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.orders.AddItems(r.Context(), id, body.Items)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	utils.WriteJSON(w, updated, http.StatusOK)
}
