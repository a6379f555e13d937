package domain

// LineItem is one product's entry in the cart: a frozen product snapshot
// plus a quantity. Quantity is always >= 1; an item that would drop to
// zero is removed from the cart instead of being kept at zero.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the line total, price times quantity.
func (li LineItem) Subtotal() float64 {
	return li.Product.Price * float64(li.Quantity)
}
