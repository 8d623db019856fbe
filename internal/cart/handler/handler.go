package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/cart/ports"
	"storefront_backend/internal/cart/service"
	"storefront_backend/internal/cart/transport"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/validator"
)

// Handler handles HTTP requests for the session cart.
type Handler struct {
	sessions *service.Sessions
	products ports.ProductReader
	val      *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid product id"
)

// New creates a new cart handler.
func New(sessions *service.Sessions, products ports.ProductReader, val *validator.Validator) *Handler {
	return &Handler{sessions: sessions, products: products, val: val}
}

// GetCart returns the session cart.
// GET /api/v1/cart
func (h *Handler) GetCart(c *gin.Context) {
	httpkit.OK(c, transport.ToCartResponse(h.store(c).State()))
}

// GetSummary returns the cart totals.
// GET /api/v1/cart/summary
func (h *Handler) GetSummary(c *gin.Context) {
	httpkit.OK(c, transport.ToCartSummaryResponse(h.store(c).State()))
}

// AddItem adds one unit of a catalog product.
// POST /api/v1/cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req transport.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Messages(err))
		return
	}

	product, err := h.products.FindProduct(c.Request.Context(), req.ProductID)
	if httpkit.HandleError(c, err) {
		return
	}

	state := h.store(c).AddToCart(c.Request.Context(), product)
	httpkit.OK(c, transport.ToCartResponse(state))
}

// RemoveItem deletes a line.
// DELETE /api/v1/cart/items/:id
func (h *Handler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	httpkit.OK(c, transport.ToCartResponse(h.store(c).RemoveFromCart(c.Request.Context(), id)))
}

// IncrementItem adds one unit to a line.
// POST /api/v1/cart/items/:id/increment
func (h *Handler) IncrementItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	httpkit.OK(c, transport.ToCartResponse(h.store(c).IncrementQuantity(c.Request.Context(), id)))
}

// DecrementItem removes one unit from a line.
// POST /api/v1/cart/items/:id/decrement
func (h *Handler) DecrementItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	httpkit.OK(c, transport.ToCartResponse(h.store(c).DecrementQuantity(c.Request.Context(), id)))
}

// ClearCart empties the cart.
// DELETE /api/v1/cart
func (h *Handler) ClearCart(c *gin.Context) {
	httpkit.OK(c, transport.ToCartResponse(h.store(c).ClearCart(c.Request.Context())))
}

// Checkout places the order and empties the cart.
// POST /api/v1/cart/checkout
func (h *Handler) Checkout(c *gin.Context) {
	receipt, err := h.store(c).Checkout(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToCheckoutResponse(receipt))
}

func (h *Handler) store(c *gin.Context) *service.Store {
	return h.sessions.Store(c.Request.Context(), httpkit.MustGetSessionID(c))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return 0, false
	}
	return id, true
}
