package models

// Variant is a purchasable option of a product (size, color). The label
// is the variant half of the cart's (product, variant) key.
type Variant struct {
	Label      string `json:"label" validate:"required"`
	PriceDelta int    `json:"price_delta"`
}

type Product struct {
	PID       string    `json:"pid,omitempty"`
	Name      string    `json:"name" validate:"required,min=3"`
	Desc      string    `json:"desc"`
	Price     int       `json:"price" validate:"required,gt=0"`
	Category  string    `json:"category"`
	Image     string    `json:"image,omitempty"`
	Variants  []Variant `json:"variants,omitempty"`
	Available bool      `json:"available"`
}
