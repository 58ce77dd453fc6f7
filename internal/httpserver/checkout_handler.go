package httpserver

import (
	"net/http"

	"tindahan-be/internal/order"
	"tindahan-be/internal/transport"
)

type shippingRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
}

type checkoutRequest struct {
	Shipping shippingRequest `json:"shipping"`
	// CheckoutID is optional; clients resend it to retry a checkout that
	// timed out without risking a duplicate.
	CheckoutID string `json:"checkout_id,omitempty"`
}

func (h *Handlers) handleCheckout(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	orders, err := h.Checkout.PlaceOrder(r.Context(), actor.UserID, order.ShippingInfo{
		Name:          req.Shipping.Name,
		ContactNumber: req.Shipping.ContactNumber,
		Address:       req.Shipping.Address,
		City:          req.Shipping.City,
		PostalCode:    req.Shipping.PostalCode,
	}, req.CheckoutID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponses(orders))
}
