package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/catalog/cache"
	"storefront_backend/internal/catalog/service"
	"storefront_backend/internal/catalog/transport"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/validator"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidProductID = "invalid product id"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListCategories returns the catalog categories.
// GET /api/v1/catalog/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.CategoryListResponse{Items: nonNil(categories)})
}

// ListProducts returns the products of a category, or all of them.
// GET /api/v1/catalog/products?category=
func (h *Handler) ListProducts(c *gin.Context) {
	var req transport.ListProductsRequest
	if !h.bindQuery(c, &req) {
		return
	}

	key := cache.ProductsKey(req.Category)
	products, err := h.svc.Products(c.Request.Context(), key.Category)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ProductListResponse{Category: key.Category, Items: products, Total: len(products)})
}

// GetProduct returns one product of the full catalog.
// GET /api/v1/catalog/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProductID, nil)
		return
	}

	product, err := h.svc.FindProduct(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, product)
}

// GetHome returns categories and products for the landing view.
// GET /api/v1/catalog/home?category=
func (h *Handler) GetHome(c *gin.Context) {
	var req transport.ListProductsRequest
	if !h.bindQuery(c, &req) {
		return
	}

	home, err := h.svc.Home(c.Request.Context(), req.Category)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.HomeResponse{
		Category:   home.Category,
		Categories: nonNil(home.Categories),
		Products:   home.Products,
	})
}

// GetQueryStatus reports the cache state of a query without triggering it.
// GET /api/v1/catalog/queries?kind=&category=
func (h *Handler) GetQueryStatus(c *gin.Context) {
	var req transport.QueryStatusRequest
	if !h.bindQuery(c, &req) {
		return
	}

	key := cache.CategoriesKey()
	if req.Kind == string(cache.KindProducts) {
		key = cache.ProductsKey(req.Category)
	}

	state := h.svc.Status(key)
	resp := transport.QueryStatusResponse{
		Kind:     string(state.Key.Kind),
		Category: state.Key.Category,
		Status:   string(state.Status),
		Count:    state.Count,
	}
	if state.Err != nil {
		resp.Error = state.Err.Error()
	}
	httpkit.OK(c, resp)
}

func (h *Handler) bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Messages(err))
		return false
	}
	return true
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
