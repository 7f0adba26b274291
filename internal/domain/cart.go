package domain

// CartLine is a single cart entry, uniquely keyed by (product id, selected
// size). Two lines for the same product in different sizes are distinct.
type CartLine struct {
	ProductID    string `json:"product_id"`
	SelectedSize string `json:"selected_size,omitempty"`
	Quantity     int    `json:"quantity"`
}

// Cart holds the lines for a single shopper.
type Cart struct {
	UserID string     `json:"user_id"`
	Lines  []CartLine `json:"lines"`
}

// FindLine returns the index of the line matching the given product id and
// size, or -1 if not present.
func (c *Cart) FindLine(productID, selectedSize string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].SelectedSize == selectedSize {
			return i
		}
	}
	return -1
}

// FindAny reports whether any line exists for the product, in any size.
func (c *Cart) FindAny(productID string) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Add merges the line into the cart: an existing line with the same key has
// its quantity incremented, otherwise the line is appended.
func (c *Cart) Add(line CartLine) {
	if i := c.FindLine(line.ProductID, line.SelectedSize); i >= 0 {
		c.Lines[i].Quantity += line.Quantity
		return
	}
	c.Lines = append(c.Lines, line)
}

// Remove deletes every line for the given product, regardless of size.
// Returns true when at least one line was removed.
func (c *Cart) Remove(productID string) bool {
	kept := c.Lines[:0]
	removed := false
	for _, l := range c.Lines {
		if l.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	c.Lines = kept
	return removed
}

// SetQuantity sets the quantity on every line for the given product. A
// quantity of zero removes the lines. Returns true when a line matched.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	if quantity == 0 {
		return c.Remove(productID)
	}
	found := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			found = true
		}
	}
	return found
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Total sums unit price times quantity across every line whose product the
// resolver can supply. Lines with no resolvable product are excluded from the
// sum and returned so the discrepancy stays visible, rather than silently
// counting as zero.
func (c *Cart) Total(resolve func(productID string) (Product, bool)) (float64, []CartLine) {
	var total float64
	var unresolved []CartLine
	for _, l := range c.Lines {
		p, ok := resolve(l.ProductID)
		if !ok {
			unresolved = append(unresolved, l)
			continue
		}
		total += p.Price * float64(l.Quantity)
	}
	return total, unresolved
}

// CloneLines returns an independent copy of the cart lines.
func (c *Cart) CloneLines() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}
