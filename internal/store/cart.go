package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	apperrors "github.com/ChukaCSTD/Macys-Clone/pkg/errors"
	"github.com/ChukaCSTD/Macys-Clone/pkg/logger"
)

// CartAPI is the slice of the remote API the cart depends on.
type CartAPI interface {
	GetCart(ctx context.Context, userID, token string) ([]domain.CartLine, error)
	AddCartItem(ctx context.Context, userID, token string, line domain.CartLine) error
	UpdateCartQuantity(ctx context.Context, userID, token, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID, token, productID string) error
}

// Cart is the shopping cart for the current session's user. All three
// mutations are optimistic with rollback: local state changes first, and a
// failed remote call restores the previous lines and surfaces the error.
//
// Concurrent asynchronous calls are not coalesced; callers must serialize
// mutations relative to a pending Fetch, or the last response to resolve
// determines the final state.
type Cart struct {
	mu      sync.Mutex
	api     CartAPI
	session *Session
	logger  *slog.Logger
	cart    domain.Cart
}

// NewCart creates a cart store bound to the session and registers its logout
// reset.
func NewCart(api CartAPI, session *Session, logger *slog.Logger) *Cart {
	c := &Cart{
		api:     api,
		session: session,
		logger:  logger,
	}
	session.OnCleared(c.reset)
	return c
}

// Fetch retrieves the remote cart and replaces local state with the response.
// Without a session user id the call is a logged no-op. On failure local
// state is left unchanged and the error is returned.
func (c *Cart) Fetch(ctx context.Context) error {
	sess, ok := c.session.Current()
	if !ok {
		logger.WithContext(ctx, c.logger).InfoContext(ctx, "cart fetch skipped: no session id")
		return nil
	}

	lines, err := c.api.GetCart(ctx, sess.PrincipalID, sess.Token)
	if err != nil {
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "cart fetch failed",
			slog.String("user_id", sess.PrincipalID),
			slog.String("error", err.Error()),
		)
		return apperrors.Wrap(err, "fetch cart")
	}

	c.mu.Lock()
	c.cart = domain.Cart{UserID: sess.PrincipalID, Lines: lines}
	c.mu.Unlock()
	return nil
}

// AddItem merges the line into the cart by (product id, selected size):
// an existing line's quantity is incremented, otherwise the line is appended.
// A zero quantity counts as one. The mutation is applied locally first and
// rolled back if the remote write fails.
func (c *Cart) AddItem(ctx context.Context, line domain.CartLine) error {
	if line.ProductID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	if line.Quantity < 0 {
		return apperrors.InvalidInput("quantity must not be negative")
	}
	if line.Quantity == 0 {
		line.Quantity = 1
	}

	sess, ok := c.session.Current()
	if !ok {
		logger.WithContext(ctx, c.logger).InfoContext(ctx, "cart add skipped: no session id",
			slog.String("product_id", line.ProductID),
		)
		return nil
	}

	return c.mutate(ctx, "add", line.ProductID, func() {
		c.cart.Add(line)
	}, func() error {
		return c.api.AddCartItem(ctx, sess.PrincipalID, sess.Token, line)
	})
}

// RemoveItem removes every line for the product. Removing a product that has
// no line is a no-op and the remote call is skipped.
func (c *Cart) RemoveItem(ctx context.Context, productID string) error {
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	sess, ok := c.session.Current()
	if !ok {
		logger.WithContext(ctx, c.logger).InfoContext(ctx, "cart remove skipped: no session id",
			slog.String("product_id", productID),
		)
		return nil
	}

	c.mu.Lock()
	present := c.cart.FindAny(productID)
	c.mu.Unlock()
	if !present {
		return nil
	}

	return c.mutate(ctx, "remove", productID, func() {
		c.cart.Remove(productID)
	}, func() error {
		return c.api.RemoveCartItem(ctx, sess.PrincipalID, sess.Token, productID)
	})
}

// UpdateQuantity sets the quantity for the product's lines. Zero removes the
// lines; negative is rejected.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	if quantity < 0 {
		return apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity == 0 {
		return c.RemoveItem(ctx, productID)
	}

	sess, ok := c.session.Current()
	if !ok {
		logger.WithContext(ctx, c.logger).InfoContext(ctx, "cart update skipped: no session id",
			slog.String("product_id", productID),
		)
		return nil
	}

	return c.mutate(ctx, "update_quantity", productID, func() {
		c.cart.SetQuantity(productID, quantity)
	}, func() error {
		return c.api.UpdateCartQuantity(ctx, sess.PrincipalID, sess.Token, productID, quantity)
	})
}

// mutate applies a local mutation, attempts the matching remote write, and
// restores the previous lines when the remote write fails.
func (c *Cart) mutate(ctx context.Context, op, productID string, local func(), remote func() error) error {
	opID := uuid.New().String()

	c.mu.Lock()
	snapshot := c.cart.CloneLines()
	local()
	c.mu.Unlock()

	if err := remote(); err != nil {
		c.mu.Lock()
		c.cart.Lines = snapshot
		c.mu.Unlock()
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "cart mutation rolled back",
			slog.String("op", op),
			slog.String("op_id", opID),
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return apperrors.Wrap(err, "cart "+op)
	}

	logger.WithContext(ctx, c.logger).InfoContext(ctx, "cart updated",
		slog.String("op", op),
		slog.String("op_id", opID),
		slog.String("product_id", productID),
	)
	return nil
}

// Lines returns a snapshot of the cart lines.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.CloneLines()
}

// Total sums unit price times quantity over the lines whose product the
// resolver can supply, returning the lines it could not resolve so they can
// be surfaced instead of silently summed as zero.
func (c *Cart) Total(resolve func(productID string) (domain.Product, bool)) (float64, []domain.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Total(resolve)
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.ItemCount()
}

// reset discards the cart on logout.
func (c *Cart) reset(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart = domain.Cart{}
}
