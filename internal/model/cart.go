package model

// CartLine is one product-id/quantity pair in the cart. A stored line always
// has Quantity >= 1; a line whose quantity drops to zero is removed, never
// persisted. The JSON tags match the blobs the web client has always
// written, so existing session state keeps parsing.
type CartLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart is an ordered sequence of cart lines. Insertion order is the order
// products were first added and is preserved across reloads. Product ids
// are unique across the sequence.
type Cart []CartLine

// Count returns the sum of all line quantities, the number shown on the
// cart badge.
func (c Cart) Count() int {
	total := 0
	for _, line := range c {
		total += line.Quantity
	}
	return total
}

// Find returns the index of the line holding productID, or -1.
func (c Cart) Find(productID int64) int {
	for i, line := range c {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
