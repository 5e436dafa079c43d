package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"amalkitchen-be/internal/cart"
	"amalkitchen-be/internal/catalog"
	"amalkitchen-be/internal/identity"
	"amalkitchen-be/internal/order"
	"amalkitchen-be/internal/report"
	"amalkitchen-be/internal/utils"
)

// Handler owns the JSON endpoints. Each request loads the cart for the
// caller's session cookie on demand; orders, reports and identity go
// through their services.
type Handler struct {
	cartStorage cart.Storage
	orders      order.Service
	reports     report.Service
	catalog     catalog.Client
	identity    identity.Service
}

func NewHandler(
	cartStorage cart.Storage,
	orders order.Service,
	reports report.Service,
	cat catalog.Client,
	id identity.Service,
) *Handler {
	return &Handler{
		cartStorage: cartStorage,
		orders:      orders,
		reports:     reports,
		catalog:     cat,
		identity:    id,
	}
}

func (h *Handler) loadCart(w http.ResponseWriter, r *http.Request) (*cart.Store, error) {
	sessionID := ensureCartSession(w, r)
	return cart.NewStore(r.Context(), h.cartStorage, sessionID)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// writeOrderError maps the domain's sentinel errors onto HTTP statuses.
// Validation failures carry their message verbatim so the storefront can
// show them inline.
func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrMixedRegions),
		errors.Is(err, order.ErrBelowMinimum),
		errors.Is(err, order.ErrNoBranch),
		errors.Is(err, order.ErrNoPaymentMethod),
		errors.Is(err, order.ErrNoRegion),
		errors.Is(err, order.ErrNoCustomerName),
		errors.Is(err, order.ErrNoContactNumber),
		errors.Is(err, order.ErrNoEmail),
		errors.Is(err, order.ErrInvalidCellNumber),
		errors.Is(err, order.ErrInvalidStatus):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrIllegalTransition):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, order.ErrOrderNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrPersistTimeout):
		utils.WriteJSONError(w, err.Error(), http.StatusGatewayTimeout)
	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
