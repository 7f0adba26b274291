package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/pkg/httpclient"
)

// ListProducts fetches the merchant's products. Results are returned in the
// raw shape; the catalog store normalizes them before use.
func (c *Client) ListProducts(ctx context.Context, merchantID string) ([]domain.RawProduct, error) {
	var products []domain.RawProduct
	err := c.do(ctx, "products.list", httpclient.JSONRequest{
		Method: http.MethodGet,
		URL:    c.url("products") + "?merchant_id=" + url.QueryEscape(merchantID),
		Out:    &products,
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product in the raw shape.
func (c *Client) GetProduct(ctx context.Context, productID string) (domain.RawProduct, error) {
	var product domain.RawProduct
	err := c.do(ctx, "products.get", httpclient.JSONRequest{
		Method: http.MethodGet,
		URL:    c.url("products", productID),
		Out:    &product,
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// CreateProduct creates a product remotely and returns the stored raw shape.
func (c *Client) CreateProduct(ctx context.Context, token string, product domain.Product) (domain.RawProduct, error) {
	var created domain.RawProduct
	err := c.do(ctx, "products.create", httpclient.JSONRequest{
		Method: http.MethodPost,
		URL:    c.url("products"),
		Bearer: token,
		Body:   product,
		Out:    &created,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProduct replaces a product remotely.
func (c *Client) UpdateProduct(ctx context.Context, token string, product domain.Product) error {
	return c.do(ctx, "products.update", httpclient.JSONRequest{
		Method: http.MethodPut,
		URL:    c.url("products", product.ID),
		Bearer: token,
		Body:   product,
	})
}

// DeleteProduct deletes a product remotely.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	return c.do(ctx, "products.delete", httpclient.JSONRequest{
		Method: http.MethodDelete,
		URL:    c.url("products", productID),
		Bearer: token,
	})
}
