package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"tindahan-be/internal/product"
	"tindahan-be/internal/transport"

	"github.com/go-chi/chi/v5"
)

type productResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	QuantitySold int       `json:"quantity_sold"`
	Images       []string  `json:"images"`
	Tags         []string  `json:"tags"`
	CategoryID   uint      `json:"category_id"`
	SellerID     uint      `json:"seller_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		QuantitySold: p.QuantitySold,
		Images:       p.Images,
		Tags:         p.Tags,
		CategoryID:   p.CategoryID,
		SellerID:     p.SellerID,
		CreatedAt:    p.CreatedAt,
	}
}

func toProductResponses(products []*product.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type createProductRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	CategoryID  uint     `json:"category_id"`
}

type updateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	CategoryID  *uint    `json:"category_id"`
}

func (h *Handlers) handleListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.Products.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handlers) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handlers) handleFeaturedProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.Featured(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handlers) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.Products.Create(r.Context(), actor, product.NewProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Tags:        req.Tags,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

func (h *Handlers) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.Products.Update(r.Context(), actor, chi.URLParam(r, "id"), product.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Tags:        req.Tags,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handlers) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())

	if err := h.Products.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

type adjustStockRequest struct {
	Delta int `json:"delta"`
}

// handleAdjustStock lets a seller restock or write down their own product.
// The mutation itself goes through the inventory ledger.
func (h *Handlers) handleAdjustStock(w http.ResponseWriter, r *http.Request) {
	actor, _ := transport.ActorFrom(r.Context())
	productID := chi.URLParam(r, "id")

	var req adjustStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.Products.Get(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p.SellerID != actor.UserID {
		writeError(w, r, product.ErrNotProductSeller)
		return
	}

	remaining, err := h.Ledger.Adjust(r.Context(), productID, req.Delta)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		ProductID string `json:"product_id"`
		Stock     int    `json:"stock"`
	}{productID, remaining})
}

func (h *Handlers) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	type categoryResponse struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name})
	}

	writeJSON(w, http.StatusOK, out)
}
