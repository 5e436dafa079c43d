package transport

import (
	"errors"
	"net/http"

	"amalkitchen-be/internal/cart"
	"amalkitchen-be/internal/catalog"
	"amalkitchen-be/internal/region"
	"amalkitchen-be/internal/utils"
)

type cartView struct {
	Items          []cart.Item `json:"items"`
	SelectedRegion string      `json:"selected_region,omitempty"`
	Branch         string      `json:"branch,omitempty"`
	MixedRegions   bool        `json:"mixed_regions"`
	TotalItems     int         `json:"total_items"`
	TotalPrice     float64     `json:"total_price"`
}

func viewOf(crt *cart.Store) cartView {
	res := region.Resolve(crt.Items(), crt.SelectedRegion())
	return cartView{
		Items:          crt.Items(),
		SelectedRegion: crt.SelectedRegion(),
		Branch:         res.Branch,
		MixedRegions:   res.Mixed,
		TotalItems:     crt.TotalItems(),
		TotalPrice:     crt.TotalPrice(),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	crt, err := h.loadCart(w, r)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, viewOf(crt), http.StatusOK)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var item cart.Item
	if err := decodeJSON(r, &item); err != nil || item.ID == "" {
		utils.WriteJSONError(w, "invalid cart item", http.StatusBadRequest)
		return
	}

	crt, err := h.loadCart(w, r)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	if err := crt.Add(r.Context(), item); err != nil {
		utils.WriteJSONError(w, "failed to save cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, viewOf(crt), http.StatusOK)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid quantity", http.StatusBadRequest)
		return
	}

	crt, err := h.loadCart(w, r)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	if err := crt.UpdateQuantity(r.Context(), r.PathValue("id"), body.Quantity); err != nil {
		utils.WriteJSONError(w, "failed to save cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, viewOf(crt), http.StatusOK)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	crt, err := h.loadCart(w, r)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	if err := crt.Remove(r.Context(), r.PathValue("id")); err != nil {
		utils.WriteJSONError(w, "failed to save cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, viewOf(crt), http.StatusOK)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	crt, err := h.loadCart(w, r)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	if err := crt.Clear(r.Context()); err != nil {
		utils.WriteJSONError(w, "failed to clear cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, viewOf(crt), http.StatusOK)
}

func (h *Handler) SetCartRegion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Region string `json:"region"`
	}
	if err := decodeJSON(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid region", http.StatusBadRequest)
		return
	}

	crt, err := h.loadCart(w, r)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	if err := crt.SetSelectedRegion(r.Context(), body.Region); err != nil {
		utils.WriteJSONError(w, "failed to save cart", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, viewOf(crt), http.StatusOK)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	utils.WriteJSON(w, products, http.StatusOK)
}

type productView struct {
	catalog.Product
	Price *float64 `json:"price,omitempty"`
}

// GetProduct returns a single catalog record. With ?region= the response
// carries the resolved price for that region; an unpriced region is a 404
// so the storefront never shows an orderable product it cannot price.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if errors.Is(err, catalog.ErrProductNotFound) {
		utils.WriteJSONError(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	view := productView{Product: *p}
	if reg := r.URL.Query().Get("region"); reg != "" {
		price, ok := p.PriceFor(reg)
		if !ok {
			utils.WriteJSONError(w, "product not available in this region", http.StatusNotFound)
			return
		}
		view.Price = &price
	}
	utils.WriteJSON(w, view, http.StatusOK)
}
