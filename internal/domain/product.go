package domain

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/ChukaCSTD/Macys-Clone/pkg/errors"
)

// RawProduct is the untyped shape product data arrives in: API payloads,
// hard-coded samples, partial edits from the dashboard forms. It must never be
// stored or compared directly; Normalize is the only boundary crossing into
// the canonical Product shape.
type RawProduct map[string]any

// Product is the canonical product shape. Every Product held by the catalog
// has gone through Normalize exactly once.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Price    float64 `json:"price"`
	Brand    string  `json:"brand"`
	Quantity int     `json:"quantity"`
	Currency string  `json:"currency"`

	Images []string `json:"images"`

	MinQty             int        `json:"min_qty"`
	MaxQty             int        `json:"max_qty"`
	Discount           float64    `json:"discount"`
	DiscountExpiration *time.Time `json:"discount_expiration"`

	HasRefundPolicy bool `json:"has_refund_policy"`
	HasDiscount     bool `json:"has_discount"`
	HasShipment     bool `json:"has_shipment"`
	HasVariation    bool `json:"has_variation"`

	ShippingLocations []string `json:"shipping_locations"`
	Attrib            []any    `json:"attrib"`

	CategoryID *string `json:"category_id"`
	MerchantID string  `json:"merchant_id"`

	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Raw converts the product back into its untyped view via a JSON round trip.
// Re-normalizing the result yields the product unchanged.
func (p Product) Raw() RawProduct {
	data, err := json.Marshal(p)
	if err != nil {
		// Product contains only JSON-encodable fields.
		panic(fmt.Sprintf("marshal product: %v", err))
	}
	var raw RawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("unmarshal product: %v", err))
	}
	return raw
}

// Validate checks the write-boundary invariants Normalize deliberately does
// not enforce: a caller-supplied id and a coherent quantity window.
func (p Product) Validate() error {
	if p.ID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	if p.MinQty > p.MaxQty {
		return apperrors.InvalidInput(fmt.Sprintf("min_qty %d exceeds max_qty %d", p.MinQty, p.MaxQty))
	}
	return nil
}

// Category is a merchant-scoped grouping of products.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MerchantID string `json:"merchant_id"`
}
