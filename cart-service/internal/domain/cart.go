package domain

import "time"

// LineItem is one cart entry, keyed by (ProductID, Variant).
type LineItem struct {
	ProductID string `json:"product_id"`
	Variant   string `json:"variant"`
	Name      string `json:"name"`
	UnitPrice int    `json:"unit_price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (i LineItem) Subtotal() int {
	return i.UnitPrice * i.Quantity
}

func (i LineItem) sameKey(productID, variant string) bool {
	return i.ProductID == productID && i.Variant == variant
}
