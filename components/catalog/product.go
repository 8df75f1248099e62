package catalog

import "fmt"

// Status values are derived from stock once, when a product is created.
const (
	StatusActive     = "Active"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"
)

// LowStockThreshold is the stock level below which a product is flagged.
const LowStockThreshold = 10

// Categories lists the accepted product categories in picker order.
var Categories = []string{"Apparel", "Electronics", "Home", "Beauty"}

// Product is a single catalog row.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	Status      string  `json:"status"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// DeriveStatus maps a stock level to its status label.
func DeriveStatus(stock int64) string {
	switch {
	case stock == 0:
		return StatusOutOfStock
	case stock < LowStockThreshold:
		return StatusLowStock
	default:
		return StatusActive
	}
}

// PriceLabel renders the price with two decimals and a dollar sign.
func (p Product) PriceLabel() string {
	return fmt.Sprintf("$%.2f", p.Price)
}

// Badge returns the short badge text shown in the product table.
func (p Product) Badge() string {
	switch p.Status {
	case StatusLowStock:
		return "Low"
	case StatusOutOfStock:
		return "Out"
	default:
		return "Active"
	}
}

// BadgeVariant mirrors the badge colour: healthy stock is "secondary",
// anything else is "destructive".
func (p Product) BadgeVariant() string {
	if p.Status == StatusActive {
		return "secondary"
	}
	return "destructive"
}
