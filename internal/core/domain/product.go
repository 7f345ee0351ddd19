package domain

type (
	Product struct {
		ProductID   string
		Name        string
		Category    string
		Description string
		Price       ProductPrice
		Images      []ProductImage
	}

	ProductPrice struct {
		Amount   float64
		Currency string
	}

	ProductImage struct {
		URL string
		Alt string
	}
)

// A PricedProduct is a catalog product annotated with the weekly
// discount applied for a particular viewer.
type PricedProduct struct {
	Product
	DiscountPercent int
	DiscountedPrice float64
}
