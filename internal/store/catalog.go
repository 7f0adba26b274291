package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/internal/storage"
	"github.com/ChukaCSTD/Macys-Clone/pkg/logger"
)

// ProductAPI is the slice of the remote API the catalog depends on.
type ProductAPI interface {
	ListProducts(ctx context.Context, merchantID string) ([]domain.RawProduct, error)
}

// Catalog owns the in-memory and locally persisted product collection for the
// active session. Every product it holds has gone through domain.Normalize
// exactly once; raw shapes never enter the collection.
type Catalog struct {
	mu       sync.Mutex
	storage  storage.Store
	api      ProductAPI
	session  *Session
	logger   *slog.Logger
	defaults domain.Defaults
	products []domain.Product
}

// NewCatalog creates a catalog store and registers its logout reset with the
// session.
func NewCatalog(st storage.Store, api ProductAPI, session *Session, defaults domain.Defaults, logger *slog.Logger) *Catalog {
	c := &Catalog{
		storage:  st,
		api:      api,
		session:  session,
		logger:   logger,
		defaults: defaults,
	}
	session.OnCleared(c.reset)
	return c
}

// Load restores the collection from local storage. An absent key starts the
// catalog empty; no network call is made.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	blob, ok, err := c.storage.Get(ctx, storage.KeyProducts)
	if err != nil {
		return err
	}
	if !ok {
		c.products = nil
		return nil
	}

	var products []domain.Product
	if err := json.Unmarshal(blob, &products); err != nil {
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "discarding unreadable product cache",
			slog.String("error", err.Error()),
		)
		c.products = nil
		return nil
	}
	c.products = products
	return nil
}

// Add normalizes and appends the product, then persists the collection.
// It does not deduplicate by id; callers needing uniqueness must Get first.
func (c *Catalog) Add(ctx context.Context, raw domain.RawProduct) (domain.Product, error) {
	p := domain.Normalize(raw, c.normalizeDefaults())
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, p)
	c.persist(ctx)
	return p, nil
}

// Update normalizes the product and replaces the entry with a matching id.
// A missing entry is not an error: last write wins, missing is a silent
// no-op.
func (c *Catalog) Update(ctx context.Context, raw domain.RawProduct) (domain.Product, error) {
	p := domain.Normalize(raw, c.normalizeDefaults())
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == p.ID {
			c.products[i] = p
			c.persist(ctx)
			return p, nil
		}
	}
	return p, nil
}

// Delete removes the entry with the given id and persists. No-op when the id
// is not present. Cart and like references to the id are left dangling;
// consumers filter them out when resolving.
func (c *Catalog) Delete(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.products[:0]
	removed := false
	for _, p := range c.products {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	c.products = kept
	if removed {
		c.persist(ctx)
	}
}

// Get returns the product with the given id, reporting presence explicitly.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// MergeRemote combines the cached collection with a freshly fetched remote
// list, deduplicating by id with remote entries winning on conflict.
func (c *Catalog) MergeRemote(ctx context.Context, remote []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := make(map[string]int, len(c.products))
	for i, p := range c.products {
		index[p.ID] = i
	}
	for _, p := range remote {
		if i, ok := index[p.ID]; ok {
			c.products[i] = p
			continue
		}
		index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	c.persist(ctx)
}

// Refresh fetches the session merchant's products from the remote API,
// normalizes them and merges them into the cached collection. Without a
// session id the call is a logged no-op.
func (c *Catalog) Refresh(ctx context.Context) error {
	merchantID := c.session.PrincipalID()
	if merchantID == "" {
		logger.WithContext(ctx, c.logger).InfoContext(ctx, "catalog refresh skipped: no session id")
		return nil
	}

	raws, err := c.api.ListProducts(ctx, merchantID)
	if err != nil {
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "catalog refresh failed",
			slog.String("merchant_id", merchantID),
			slog.String("error", err.Error()),
		)
		return err
	}

	defaults := c.normalizeDefaults()
	products := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, domain.Normalize(raw, defaults))
	}
	c.MergeRemote(ctx, products)
	return nil
}

// Products returns a snapshot of the collection.
func (c *Catalog) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// normalizeDefaults resolves the merchant fallback from the live session.
func (c *Catalog) normalizeDefaults() domain.Defaults {
	d := c.defaults
	if sess, ok := c.session.Current(); ok && sess.Kind == domain.KindMerchant {
		d.MerchantID = sess.PrincipalID
	}
	return d
}

// persist writes the full collection to its storage key. Write failures are
// logged and swallowed; the in-memory collection stays authoritative for the
// rest of the page lifetime. Callers must hold the mutex.
func (c *Catalog) persist(ctx context.Context) {
	blob, err := json.Marshal(c.products)
	if err != nil {
		logger.WithContext(ctx, c.logger).ErrorContext(ctx, "encode product cache", slog.String("error", err.Error()))
		return
	}
	if err := c.storage.Put(ctx, storage.KeyProducts, blob); err != nil {
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "persist product cache",
			slog.String("error", err.Error()),
		)
	}
}

// reset discards session-scoped catalog state on logout.
func (c *Catalog) reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	if err := c.storage.Delete(ctx, storage.KeyProducts); err != nil {
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "clear product cache", slog.String("error", err.Error()))
	}
}
