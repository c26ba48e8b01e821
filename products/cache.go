package products

import (
	"encoding/json"
	"log"
	"time"

	"arabianx/models"
	"arabianx/rdx"
)

const catalogCacheKey = "catalog:all"
const catalogCacheTTL = 2 * time.Minute

func cachedCatalog() ([]models.Product, bool) {
	raw, err := rdx.RdxGet(catalogCacheKey)
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false
	}
	return products, true
}

func cacheCatalog(products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := rdx.SetWithExpiry(catalogCacheKey, string(data), catalogCacheTTL); err != nil {
		log.Println("catalog cache set error:", err)
	}
}

// invalidateCatalog drops the cached list after any product mutation.
func invalidateCatalog() {
	if err := rdx.RdxDel(catalogCacheKey); err != nil {
		log.Println("catalog cache del error:", err)
	}
}
