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

// LikeAPI is the slice of the remote API the like store depends on.
type LikeAPI interface {
	CreateLike(ctx context.Context, productID, userID string) error
	DeleteLike(ctx context.Context, productID, userID string) error
	LikedUsers(ctx context.Context, productID string) ([]domain.Liker, error)
}

// Likes is the per-shopper liked-products set. The local set is authoritative
// for the UI: every toggle persists locally right away and then mirrors to
// the remote API best-effort, attempted at most once and never rolled back.
type Likes struct {
	mu      sync.Mutex
	storage storage.Store
	api     LikeAPI
	session *Session
	logger  *slog.Logger
	set     domain.LikeSet
}

// NewLikes creates a like store and registers its logout reset.
func NewLikes(st storage.Store, api LikeAPI, session *Session, logger *slog.Logger) *Likes {
	l := &Likes{
		storage: st,
		api:     api,
		session: session,
		logger:  logger,
		set:     domain.LikeSet{},
	}
	session.OnCleared(l.reset)
	return l
}

// Load restores the like set from local storage; an absent key starts empty.
func (l *Likes) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	blob, ok, err := l.storage.Get(ctx, storage.KeyLikedProducts)
	if err != nil {
		return err
	}
	if !ok {
		l.set = domain.LikeSet{}
		return nil
	}

	var set domain.LikeSet
	if err := json.Unmarshal(blob, &set); err != nil {
		logger.WithContext(ctx, l.logger).WarnContext(ctx, "discarding unreadable like cache",
			slog.String("error", err.Error()),
		)
		l.set = domain.LikeSet{}
		return nil
	}
	if set == nil {
		set = domain.LikeSet{}
	}
	l.set = set
	return nil
}

// Toggle flips the liked state for the product and persists the whole set
// immediately, then mirrors the change remotely. A remote failure is logged
// only; the local state is never rolled back. Returns the new state.
func (l *Likes) Toggle(ctx context.Context, productID string) bool {
	l.mu.Lock()
	liked := l.set.Toggle(productID)
	l.persist(ctx)
	l.mu.Unlock()

	userID := l.session.PrincipalID()
	if userID == "" {
		logger.WithContext(ctx, l.logger).InfoContext(ctx, "like mirror skipped: no session id",
			slog.String("product_id", productID),
		)
		return liked
	}

	var err error
	if liked {
		err = l.api.CreateLike(ctx, productID, userID)
	} else {
		err = l.api.DeleteLike(ctx, productID, userID)
	}
	if err != nil {
		logger.WithContext(ctx, l.logger).WarnContext(ctx, "like mirror failed",
			slog.String("product_id", productID),
			slog.Bool("liked", liked),
			slog.String("error", err.Error()),
		)
	}

	return liked
}

// Liked reports whether the product is currently liked.
func (l *Likes) Liked(productID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.set.Liked(productID)
}

// Set returns a snapshot of the like set.
func (l *Likes) Set() domain.LikeSet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.set.Clone()
}

// LikedUsers fetches the principals who liked a product. Any failure degrades
// to an empty slice rather than propagating.
func (l *Likes) LikedUsers(ctx context.Context, productID string) []domain.Liker {
	likers, err := l.api.LikedUsers(ctx, productID)
	if err != nil {
		logger.WithContext(ctx, l.logger).WarnContext(ctx, "liked users fetch failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return []domain.Liker{}
	}
	if likers == nil {
		likers = []domain.Liker{}
	}
	return likers
}

// persist writes the whole set to its storage key. Failures are logged and
// swallowed. Callers must hold the mutex.
func (l *Likes) persist(ctx context.Context) {
	blob, err := json.Marshal(l.set)
	if err != nil {
		logger.WithContext(ctx, l.logger).ErrorContext(ctx, "encode like cache", slog.String("error", err.Error()))
		return
	}
	if err := l.storage.Put(ctx, storage.KeyLikedProducts, blob); err != nil {
		logger.WithContext(ctx, l.logger).WarnContext(ctx, "persist like cache",
			slog.String("error", err.Error()),
		)
	}
}

// reset discards the like set on logout.
func (l *Likes) reset(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.set = domain.LikeSet{}
	if err := l.storage.Delete(ctx, storage.KeyLikedProducts); err != nil {
		logger.WithContext(ctx, l.logger).WarnContext(ctx, "clear like cache", slog.String("error", err.Error()))
	}
}
