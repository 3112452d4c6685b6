package domain

// CartLineItem is one entry in the cart: a product plus a quantity.
// Quantity is always >= 1; a line whose quantity would drop to zero is
// removed from the sequence instead.
type CartLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// ItemizeCart converts cart line items into the flat order-item form the
// payment gateways and order records consume. A missing size is recorded
// as "N/A".
func ItemizeCart(items []CartLineItem) []OrderItem {
	itemized := make([]OrderItem, 0, len(items))
	for _, line := range items {
		size := "N/A"
		if line.Product.Size != "" {
			size = string(line.Product.Size)
		}
		itemized = append(itemized, OrderItem{
			ProductID: line.Product.ID,
			Title:     line.Product.Title,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Size:      size,
		})
	}
	return itemized
}
