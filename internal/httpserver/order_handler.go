package httpserver

import (
	"net/http"
	"time"

	"tindahan-be/internal/order"
	"tindahan-be/internal/transport"

	"github.com/go-chi/chi/v5"
)

type orderLineResponse struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	ItemTotal float64 `json:"item_total"`
	Rated     bool    `json:"rated"`
}

type shippingResponse struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	Number    string              `json:"number"`
	BuyerID   uint                `json:"buyer_id"`
	SellerID  uint                `json:"seller_id"`
	Lines     []orderLineResponse `json:"lines"`
	Shipping  shippingResponse    `json:"shipping"`
	Total     float64             `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

func toOrderResponse(o *order.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineResponse{
			ProductID: l.ProductID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			Price:     l.Price,
			ItemTotal: l.ItemTotal,
			Rated:     l.Rated,
		})
	}

	return orderResponse{
		ID:       o.ID,
		Number:   o.Number,
		BuyerID:  o.BuyerID,
		SellerID: o.SellerID,
		Lines:    lines,
		Shipping: shippingResponse{
			Name:          o.Shipping.Name,
			ContactNumber: o.Shipping.ContactNumber,
			Address:       o.Shipping.Address,
			City:          o.Shipping.City,
			PostalCode:    o.Shipping.PostalCode,
		},
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) handleListOrders(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	orders, err := h.Orders.ListByBuyer(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handlers) handleListSales(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	orders, err := h.Orders.ListBySeller(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handlers) handleOrderDetail(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	o, err := h.Orders.GetOrderDetail(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handlers) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	o, err := h.Orders.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), order.Status(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}
