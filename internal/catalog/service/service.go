package service

import (
	"context"

	"storefront_backend/internal/catalog/cache"
	"storefront_backend/internal/catalog/domain"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Remote is the catalog transport the service caches.
type Remote interface {
	FetchCategories(ctx context.Context) ([]string, error)
	FetchProducts(ctx context.Context, category string) ([]domain.Product, error)
}

// Service serves catalog queries through the process-wide query cache.
type Service struct {
	remote     Remote
	products   *cache.Cache[[]domain.Product]
	categories *cache.Cache[[]string]
	log        *logger.Logger
}

// QueryState is the externally visible state of one cached query.
type QueryState struct {
	Key    cache.Key
	Status cache.Status
	Count  int
	Err    error
}

// Home is the landing view: the category list plus the products of one category.
type Home struct {
	Category   string
	Categories []string
	Products   []domain.Product
}

// New creates a catalog service.
func New(remote Remote, log *logger.Logger) *Service {
	return &Service{
		remote:     remote,
		products:   cache.New[[]domain.Product](),
		categories: cache.New[[]string](),
		log:        log,
	}
}

// Products returns the products of category, or the whole catalog for "" and "all".
func (s *Service) Products(ctx context.Context, category string) ([]domain.Product, error) {
	key := cache.ProductsKey(category)
	products, err := s.products.Get(ctx, key, func(fctx context.Context) ([]domain.Product, error) {
		s.log.WithContext(fctx).Debug("catalog fetch", "key", key.String())
		return s.remote.FetchProducts(fctx, key.Category)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Categories returns the category names offered by the catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	key := cache.CategoriesKey()
	categories, err := s.categories.Get(ctx, key, func(fctx context.Context) ([]string, error) {
		s.log.WithContext(fctx).Debug("catalog fetch", "key", key.String())
		return s.remote.FetchCategories(fctx)
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Home runs the categories and products queries concurrently.
// Each query keeps its own cache entry; a failure of either fails the view.
func (s *Service) Home(ctx context.Context, category string) (Home, error) {
	home := Home{Category: domain.NormalizeCategory(category)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := s.Categories(gctx)
		home.Categories = categories
		return err
	})
	g.Go(func() error {
		products, err := s.Products(gctx, home.Category)
		home.Products = products
		return err
	})

	if err := g.Wait(); err != nil {
		return Home{}, err
	}
	return home, nil
}

// Status reports the state of a query without triggering it.
func (s *Service) Status(key cache.Key) QueryState {
	switch key.Kind {
	case cache.KindCategories:
		entry := s.categories.Peek(cache.CategoriesKey())
		return QueryState{Key: entry.Key, Status: entry.Status, Count: len(entry.Data), Err: entry.Err}
	default:
		entry := s.products.Peek(cache.ProductsKey(key.Category))
		return QueryState{Key: entry.Key, Status: entry.Status, Count: len(entry.Data), Err: entry.Err}
	}
}

// FindProduct resolves a product id against the full catalog.
func (s *Service) FindProduct(ctx context.Context, id int64) (domain.Product, error) {
	products, err := s.Products(ctx, domain.AllCategories)
	if err != nil {
		return domain.Product{}, err
	}
	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}
	return domain.Product{}, apperr.NotFound("product not found").WithOp("catalog.FindProduct")
}
