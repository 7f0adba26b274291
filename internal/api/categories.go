package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/pkg/httpclient"
)

// ListCategories fetches the merchant's categories.
func (c *Client) ListCategories(ctx context.Context, merchantID string) ([]domain.Category, error) {
	var categories []domain.Category
	err := c.do(ctx, "categories.list", httpclient.JSONRequest{
		Method: http.MethodGet,
		URL:    c.url("categories") + "?merchant_id=" + url.QueryEscape(merchantID),
		Out:    &categories,
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category scoped to its merchant.
func (c *Client) CreateCategory(ctx context.Context, token string, category domain.Category) (domain.Category, error) {
	var created domain.Category
	err := c.do(ctx, "categories.create", httpclient.JSONRequest{
		Method: http.MethodPost,
		URL:    c.url("categories"),
		Bearer: token,
		Body:   category,
		Out:    &created,
	})
	if err != nil {
		return domain.Category{}, err
	}
	return created, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, token string, category domain.Category) error {
	return c.do(ctx, "categories.update", httpclient.JSONRequest{
		Method: http.MethodPut,
		URL:    c.url("categories", category.ID),
		Bearer: token,
		Body:   category,
	})
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, token, categoryID string) error {
	return c.do(ctx, "categories.delete", httpclient.JSONRequest{
		Method: http.MethodDelete,
		URL:    c.url("categories", categoryID),
		Bearer: token,
	})
}
