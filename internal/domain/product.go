package domain

// Category is the closed set of catalog collections.
type Category string

const (
	CategoryMen          Category = "men"
	CategoryWomen        Category = "women"
	CategoryCollectibles Category = "collectibles"
)

// Valid reports whether the category names a known collection.
func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryCollectibles:
		return true
	}
	return false
}

// Size is an optional garment size attribute.
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// Product represents an immutable catalog entry. Size is empty for
// products not sold in sized variants.
type Product struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Price    float64  `json:"price"`
	Image    string   `json:"image"`
	Category Category `json:"category"`
	Size     Size     `json:"size,omitempty"`
}
