package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/pkg/httpclient"
)

type likeBody struct {
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
}

// CreateLike records that the user likes the product.
func (c *Client) CreateLike(ctx context.Context, productID, userID string) error {
	return c.do(ctx, "likes.create", httpclient.JSONRequest{
		Method: http.MethodPost,
		URL:    c.url("likes"),
		Body:   likeBody{ProductID: productID, UserID: userID},
	})
}

// DeleteLike removes the user's like for the product.
func (c *Client) DeleteLike(ctx context.Context, productID, userID string) error {
	return c.do(ctx, "likes.delete", httpclient.JSONRequest{
		Method: http.MethodDelete,
		URL:    c.url("likes"),
		Body:   likeBody{ProductID: productID, UserID: userID},
	})
}

// LikedUsers fetches the principals who liked a product.
func (c *Client) LikedUsers(ctx context.Context, productID string) ([]domain.Liker, error) {
	var likers []domain.Liker
	err := c.do(ctx, "likes.liked_users", httpclient.JSONRequest{
		Method: http.MethodGet,
		URL:    c.url("liked") + "?product_id=" + url.QueryEscape(productID),
		Out:    &likers,
	})
	if err != nil {
		return nil, err
	}
	return likers, nil
}
