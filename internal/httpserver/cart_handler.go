package httpserver

import (
	"net/http"

	"tindahan-be/internal/cart"
	"tindahan-be/internal/transport"

	"github.com/go-chi/chi/v5"
)

type cartItemResponse struct {
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	PriceAtAdd float64 `json:"price_at_add"`
}

func toCartResponse(items []*cart.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemResponse{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceAtAdd: item.PriceAtAdd,
		})
	}
	return out
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handlers) handleGetCart(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	items, err := h.Carts.GetCart(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(items))
}

func (h *Handlers) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.Carts.AddToCart(r.Context(), actor, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, cartItemResponse{
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		PriceAtAdd: item.PriceAtAdd,
	})
}

func (h *Handlers) handleUpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.Carts.UpdateQuantity(r.Context(), actor, chi.URLParam(r, "productID"), req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handlers) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	if err := h.Carts.RemoveFromCart(r.Context(), actor, chi.URLParam(r, "productID")); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
