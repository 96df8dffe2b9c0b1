package model

// Product represents a furniture product in the catalogue. The catalogue is
// owned by the backend; this core only reads it. Optional fields may be
// absent, in particular when the product came from the static sample
// catalogue rather than the live API.
type Product struct {
	ID                 int64             `json:"id"`
	Name               string            `json:"name"`
	Price              int64             `json:"price"`
	OriginalPrice      *int64            `json:"original_price,omitempty"`
	DiscountPercentage *int              `json:"discount_percentage,omitempty"`
	Image              string            `json:"image"`
	Category           string            `json:"category"`
	Rating             *float64          `json:"rating,omitempty"`
	ReviewCount        *int              `json:"review_count,omitempty"`
	InStock            *bool             `json:"in_stock,omitempty"`
	Specifications     map[string]string `json:"specifications,omitempty"`
}

// Category represents a product category from the catalogue.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// ViewedProduct is a trimmed snapshot of a product captured at view time.
// It is not live-linked to the catalogue entry.
type ViewedProduct struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Price              int64    `json:"price"`
	OriginalPrice      *int64   `json:"original_price,omitempty"`
	Image              string   `json:"image"`
	Category           string   `json:"category"`
	DiscountPercentage *int     `json:"discount_percentage,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
}

// ViewedSnapshot trims a full product down to the fields the
// recently-viewed list keeps.
func ViewedSnapshot(p *Product) ViewedProduct {
	return ViewedProduct{
		ID:                 p.ID,
		Name:               p.Name,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		Image:              p.Image,
		Category:           p.Category,
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
	}
}
