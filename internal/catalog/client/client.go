// Package client provides the HTTP client for the remote product catalog.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront_backend/internal/catalog/domain"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/sanitize"
	"storefront_backend/platform/validator"
)

const (
	msgCatalogUnavailable = "catalog unavailable"
	// maxResponseBytes caps how much of an upstream body is decoded.
	maxResponseBytes = 8 << 20
)

// Client is the HTTP client for the remote catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	val        *validator.Validator
	log        *logger.Logger
}

// New creates a catalog client for the configured base URL.
func New(cfg config.CatalogConfig, val *validator.Validator, log *logger.Logger) *Client {
	return NewWithHTTPClient(cfg.GetCatalogBaseURL(), &http.Client{Timeout: cfg.GetCatalogTimeout()}, val, log)
}

// NewWithHTTPClient creates a catalog client with a caller supplied transport.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, val *validator.Validator, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		val:        val,
		log:        log,
	}
}

// FetchCategories lists the category names offered by the catalog.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	const op = "catalog.FetchCategories"

	reqURL := c.baseURL + "/products/categories"

	var raw []string
	if err := c.getJSON(ctx, op, reqURL, &raw); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	categories := make([]string, 0, len(raw))
	for _, name := range raw {
		name = sanitize.Label(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}

	return categories, nil
}

// FetchProducts lists products, optionally restricted to one category.
// An empty category or "all" returns the whole catalog.
func (c *Client) FetchProducts(ctx context.Context, category string) ([]domain.Product, error) {
	const op = "catalog.FetchProducts"

	category = domain.NormalizeCategory(category)
	reqURL := c.baseURL + "/products"
	if category != domain.AllCategories {
		reqURL = fmt.Sprintf("%s/products/category/%s", c.baseURL, url.PathEscape(category))
	}

	var raw []apiProduct
	if err := c.getJSON(ctx, op, reqURL, &raw); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(raw))
	for _, item := range raw {
		product, ok := c.admit(item)
		if !ok {
			continue
		}
		products = append(products, product)
	}

	return products, nil
}

func (c *Client) getJSON(ctx context.Context, op, reqURL string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperr.Internal("create catalog request").WithOp(op)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError(op, reqURL, 0, err)
		return apperr.Unavailable(msgCatalogUnavailable, err).WithOp(op)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := fmt.Errorf("upstream status %d", resp.StatusCode)
		c.log.UpstreamError(op, reqURL, resp.StatusCode, statusErr)
		return apperr.Unavailable(msgCatalogUnavailable, statusErr).WithOp(op)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dst); err != nil {
		c.log.UpstreamError(op, reqURL, resp.StatusCode, err)
		return apperr.Unavailable(msgCatalogUnavailable, fmt.Errorf("decode response: %w", err)).WithOp(op)
	}

	return nil
}

// admit validates one decoded item and converts it to the domain record.
func (c *Client) admit(item apiProduct) (domain.Product, bool) {
	item.Title = sanitize.Label(item.Title)
	item.Category = sanitize.Label(item.Category)
	item.Description = sanitize.Text(item.Description)
	item.Image = strings.TrimSpace(item.Image)

	if err := c.val.Struct(item); err != nil {
		c.log.Warn("catalog item rejected", "id", item.ID, "errors", validator.Messages(err))
		return domain.Product{}, false
	}

	return item.toDomain(), true
}

// apiProduct is the raw product shape served by the catalog API.
type apiProduct struct {
	ID          int64      `json:"id" validate:"gt=0"`
	Title       string     `json:"title" validate:"notblank,max=300"`
	Price       float64    `json:"price" validate:"gte=0"`
	Description string     `json:"description" validate:"max=5000"`
	Category    string     `json:"category" validate:"max=100"`
	Image       string     `json:"image" validate:"omitempty,url"`
	Rating      *apiRating `json:"rating" validate:"omitempty"`
}

type apiRating struct {
	Rate  float64 `json:"rate" validate:"gte=0,lte=5"`
	Count int     `json:"count" validate:"gte=0"`
}

func (a apiProduct) toDomain() domain.Product {
	product := domain.Product{
		ID:          a.ID,
		Title:       a.Title,
		Price:       a.Price,
		Description: a.Description,
		Category:    a.Category,
		Image:       a.Image,
	}
	if a.Rating != nil {
		product.Rating = &domain.Rating{Rate: a.Rating.Rate, Count: a.Rating.Count}
	}
	return product
}
