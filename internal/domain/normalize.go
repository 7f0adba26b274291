package domain

import (
	"encoding/json"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

// Defaults supplies the configured fallbacks Normalize applies when a raw
// payload omits a field. MerchantID is the current session's merchant id and
// may be empty when no merchant is signed in.
type Defaults struct {
	Currency   string
	Brand      string
	MerchantID string
}

// Quantity window applied when a payload carries no usable bounds.
const (
	DefaultMinQty = 1
	DefaultMaxQty = 10000
)

// Normalize converts any product-shaped input into the canonical Product
// shape. It is total: every field has a safe default and no input causes a
// panic. It never fabricates an id; Product.Validate flags the absence.
// Applying Normalize to an already-normalized product is a no-op.
func Normalize(raw RawProduct, d Defaults) Product {
	title := stringField(raw, "title", "name")

	p := Product{
		ID:          cast.ToString(raw["id"]),
		Title:       title,
		Name:        title,
		Description: stringField(raw, "description", "descp"),
		Price:       floatField(raw["price"], 0),
		Brand:       stringOr(raw["brand"], d.Brand),
		Quantity:    intFloor(raw["quantity"], 0, 0),
		Images:      imagesField(raw),
		Currency:    stringOr(raw["currency"], d.Currency),
		MinQty:      intFloor(raw["min_qty"], 1, DefaultMinQty),
		MaxQty:      intFloor(raw["max_qty"], 1, DefaultMaxQty),
		Discount:    clamp(floatField(raw["discount"], 0), 0, 100),

		HasRefundPolicy: truthy(raw["has_refund_policy"]),
		HasDiscount:     truthy(raw["has_discount"]),
		HasShipment:     truthy(raw["has_shipment"]),
		HasVariation:    truthy(raw["has_variation"]),

		ShippingLocations: stringSliceField(raw["shipping_locations"]),
		Attrib:            anySliceField(raw["attrib"]),

		MerchantID: stringOr(raw["merchant_id"], d.MerchantID),
		Rating:     clamp(floatField(raw["rating"], 0), 0, 5),
		Reviews:    intFloor(raw["reviews"], 0, 0),
	}

	if id := cast.ToString(raw["category_id"]); id != "" {
		p.CategoryID = &id
	}

	if t, ok := timeField(raw["discount_expiration"]); ok {
		p.DiscountExpiration = &t
	}

	now := time.Now().UTC()
	if t, ok := timeField(raw["created_at"]); ok {
		p.CreatedAt = t
	} else {
		p.CreatedAt = now
	}
	if t, ok := timeField(raw["updated_at"]); ok {
		p.UpdatedAt = t
	} else {
		p.UpdatedAt = now
	}

	return p
}

// stringField returns the first non-empty string among the given keys.
func stringField(raw RawProduct, keys ...string) string {
	for _, k := range keys {
		if s := cast.ToString(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringOr(v any, fallback string) string {
	if s := cast.ToString(v); s != "" {
		return s
	}
	return fallback
}

func floatField(v any, def float64) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil || f < 0 {
		return def
	}
	return f
}

// intFloor coerces v to an int, substituting def when the value is missing,
// unparsable, or below floor.
func intFloor(v any, floor, def int) int {
	n, err := cast.ToIntE(v)
	if err != nil || n < floor {
		return def
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// truthy coerces any value to a strict boolean. Empty strings, zero numbers
// and nil are false; everything else present is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint64:
		return x != 0
	default:
		return true
	}
}

// imagesField resolves images in order: an explicit array passes through
// (even when empty), a lone imageUrl is lifted into a one-element slice,
// anything else yields an empty slice.
func imagesField(raw RawProduct) []string {
	if v, ok := raw["images"]; ok {
		if s, isArray := toStringSlice(v); isArray {
			return s
		}
	}
	if url := cast.ToString(raw["imageUrl"]); url != "" {
		return []string{url}
	}
	return []string{}
}

func stringSliceField(v any) []string {
	if s, isArray := toStringSlice(v); isArray {
		return s
	}
	return []string{}
}

// anySliceField accepts any JSON-encodable sequence and canonicalizes its
// elements to JSON value types, so repeated normalization is stable.
func anySliceField(v any) []any {
	if v == nil {
		return []any{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return []any{}
	}
	var out []any
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return []any{}
	}
	return out
}

func toStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, true
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			out = append(out, cast.ToString(e))
		}
		return out, true
	default:
		return nil, false
	}
}

func timeField(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case nil:
		return time.Time{}, false
	}
	s := cast.ToString(v)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
