package api

import (
	"context"
	"net/http"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/pkg/httpclient"
)

// GetCart retrieves the remote cart lines for the given user.
func (c *Client) GetCart(ctx context.Context, userID, token string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := c.do(ctx, "carts.get", httpclient.JSONRequest{
		Method: http.MethodGet,
		URL:    c.url("carts", userID),
		Bearer: token,
		Out:    &lines,
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// AddCartItem appends or merges a line into the remote cart.
func (c *Client) AddCartItem(ctx context.Context, userID, token string, line domain.CartLine) error {
	return c.do(ctx, "carts.add_item", httpclient.JSONRequest{
		Method: http.MethodPost,
		URL:    c.url("carts", userID, "items"),
		Bearer: token,
		Body:   line,
	})
}

// UpdateCartQuantity sets the quantity for a product in the remote cart.
func (c *Client) UpdateCartQuantity(ctx context.Context, userID, token, productID string, quantity int) error {
	return c.do(ctx, "carts.update_quantity", httpclient.JSONRequest{
		Method: http.MethodPut,
		URL:    c.url("carts", userID, productID),
		Bearer: token,
		Body:   map[string]int{"quantity": quantity},
	})
}

// RemoveCartItem deletes a product from the remote cart.
func (c *Client) RemoveCartItem(ctx context.Context, userID, token, productID string) error {
	return c.do(ctx, "carts.remove_item", httpclient.JSONRequest{
		Method: http.MethodDelete,
		URL:    c.url("carts", userID, productID),
		Bearer: token,
	})
}
