package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"tindahan-be/internal/cart"
	"tindahan-be/internal/checkout"
	"tindahan-be/internal/inventory"
	"tindahan-be/internal/logger"
	"tindahan-be/internal/order"
	"tindahan-be/internal/product"
	"tindahan-be/internal/review"
	"tindahan-be/internal/user"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain errors onto HTTP statuses. Anything unmapped is a
// 500 with a generic body; the real cause goes to the log only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	var insufficient *inventory.InsufficientStockError

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		msg = err.Error()

	case errors.Is(err, cart.ErrBuyerOnly),
		errors.Is(err, product.ErrSellerOnly),
		errors.Is(err, product.ErrNotProductSeller),
		errors.Is(err, order.ErrForbiddenTransition),
		errors.Is(err, order.ErrNotOrderParticipant),
		errors.Is(err, review.ErrNotOrderOwner):
		status = http.StatusForbidden
		msg = err.Error()

	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, cart.ErrCartItemNotFound):
		status = http.StatusNotFound
		msg = err.Error()

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, review.ErrAlreadyReviewed),
		errors.Is(err, cart.ErrInsufficientStock):
		status = http.StatusConflict
		msg = err.Error()

	case errors.As(err, &insufficient):
		status = http.StatusConflict
		msg = err.Error()

	case errors.Is(err, review.ErrProductNotInOrder),
		errors.Is(err, review.ErrOrderNotReceived):
		status = http.StatusUnprocessableEntity
		msg = err.Error()

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidCategory),
		errors.Is(err, checkout.ErrEmptyCart):
		status = http.StatusBadRequest
		msg = err.Error()
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
