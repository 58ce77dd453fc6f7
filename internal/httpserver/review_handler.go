package httpserver

import (
	"net/http"
	"time"

	"tindahan-be/internal/review"
	"tindahan-be/internal/transport"

	"github.com/go-chi/chi/v5"
)

type createReviewRequest struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type reviewResponse struct {
	ID        uint      `json:"id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rev, err := h.Reviews.Create(r.Context(), review.CreateReviewParams{
		UserID:    actor.UserID,
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reviewResponse{
		ID:        rev.ID,
		ProductID: rev.ProductID,
		Rating:    rev.Rating,
		Comment:   rev.Comment,
		CreatedAt: rev.CreatedAt,
	})
}

func (h *Handlers) handleListProductReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		out = append(out, reviewResponse{
			ID:        rev.ID,
			ProductID: rev.ProductID,
			Rating:    rev.Rating,
			Comment:   rev.Comment,
			Username:  rev.Username,
			CreatedAt: rev.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
