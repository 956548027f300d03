package services

import (
	"context"
	"techmart_server/store"
	"techmart_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// CatalogService serves the public product listing. Reads go through the
// Redis catalog cache when one is configured; variant groups are attached
// after the rows come back from either source, so they never end up in the
// cache or the store.
type CatalogService struct {
	logger   *gecho.Logger
	products store.ProductStore
	cache    *CacheService
}

func NewCatalogService(logger *gecho.Logger, products store.ProductStore, cache *CacheService) *CatalogService {
	return &CatalogService{
		logger:   logger,
		products: products,
		cache:    cache,
	}
}

// FetchAll returns the catalog with variant groups attached. A store
// failure is logged and surfaces as an empty catalog, never as an error;
// the storefront renders an empty grid instead of breaking.
func (cs *CatalogService) FetchAll(ctx context.Context) []tables.Product {
	products, err := cs.load(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch products", gecho.Field("error", err))
		return []tables.Product{}
	}

	for i := range products {
		products[i].Variants = ProductVariants(products[i].Name)
	}
	return products
}

func (cs *CatalogService) load(ctx context.Context) ([]tables.Product, error) {
	if cs.cache != nil {
		cached, err := cs.cache.GetCatalog()
		if err != nil {
			cs.logger.Warn("Catalog cache read failed", gecho.Field("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := cs.products.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	if cs.cache != nil {
		if err := cs.cache.SetCatalog(products); err != nil {
			cs.logger.Warn("Catalog cache write failed", gecho.Field("error", err))
		}
	}
	return products, nil
}
