package domain

// LikeSet maps product ids to a liked flag. Absence of a key is equivalent to
// false; a toggled-off product keeps an explicit false entry.
type LikeSet map[string]bool

// Toggle flips the liked state for the given product id and returns the new
// state. The key stays present after toggling off.
func (s LikeSet) Toggle(productID string) bool {
	s[productID] = !s[productID]
	return s[productID]
}

// Liked reports whether the product is currently liked.
func (s LikeSet) Liked(productID string) bool {
	return s[productID]
}

// Clone returns an independent copy of the set.
func (s LikeSet) Clone() LikeSet {
	out := make(LikeSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Liker identifies a principal who liked a product.
type Liker struct {
	UserID string `json:"user_id"`
}
