// Package storage provides the local persistent key/value store the state
// managers cache into. Every value is an independent JSON blob written as a
// full overwrite of its key; no two stores share a key.
package storage

import "context"

// Well-known storage keys. Each key is owned by exactly one store and every
// key is optional on cold start.
const (
	KeyShopper        = "user"
	KeyMerchantRecord = "userData"
	KeyMerchantID     = "merchantId"
	KeyProducts       = "products"
	KeyLikedProducts  = "likedProducts"
)

// Store is a blob store keyed by string. Get reports presence explicitly so a
// missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
