package api

import (
	"context"
	"net/http"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/pkg/httpclient"
)

// RegisterMerchant creates a merchant account.
func (c *Client) RegisterMerchant(ctx context.Context, input domain.MerchantRegistration) (domain.Merchant, error) {
	var merchant domain.Merchant
	err := c.do(ctx, "merchants.register", httpclient.JSONRequest{
		Method: http.MethodPost,
		URL:    c.url("merchants"),
		Body:   input,
		Out:    &merchant,
	})
	if err != nil {
		return domain.Merchant{}, err
	}
	return merchant, nil
}

// LoginMerchant authenticates a merchant and returns the account record.
func (c *Client) LoginMerchant(ctx context.Context, email, password string) (domain.Merchant, error) {
	var merchant domain.Merchant
	err := c.do(ctx, "merchants.login", httpclient.JSONRequest{
		Method: http.MethodPost,
		URL:    c.url("merchants", "login"),
		Body:   map[string]string{"email": email, "password": password},
		Out:    &merchant,
	})
	if err != nil {
		return domain.Merchant{}, err
	}
	return merchant, nil
}

// UpdateMerchant updates merchant profile fields.
func (c *Client) UpdateMerchant(ctx context.Context, token, merchantID string, input domain.MerchantUpdate) (domain.Merchant, error) {
	var merchant domain.Merchant
	err := c.do(ctx, "merchants.update", httpclient.JSONRequest{
		Method: http.MethodPut,
		URL:    c.url("merchants", merchantID),
		Bearer: token,
		Body:   input,
		Out:    &merchant,
	})
	if err != nil {
		return domain.Merchant{}, err
	}
	return merchant, nil
}

// ChangeMerchantPassword changes the merchant's password.
func (c *Client) ChangeMerchantPassword(ctx context.Context, token, merchantID, oldPassword, newPassword string) error {
	return c.do(ctx, "merchants.change_passwd", httpclient.JSONRequest{
		Method: http.MethodPut,
		URL:    c.url("merchants", merchantID, "change-passwd"),
		Bearer: token,
		Body: map[string]string{
			"old_passwd": oldPassword,
			"new_passwd": newPassword,
		},
	})
}
