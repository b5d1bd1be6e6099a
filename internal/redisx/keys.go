package redisx

import "time"

const (
	// Cache detail product: product:{product_id} -> JSON product
	KeyProduct = "product:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLProductCache = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
)
