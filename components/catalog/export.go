package catalog

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type productRow struct {
	ID          int64  `csv:"id"`
	Name        string `csv:"name"`
	Category    string `csv:"category"`
	Price       string `csv:"price"`
	Stock       int64  `csv:"stock"`
	Status      string `csv:"status"`
	Description string `csv:"description"`
}

// WriteCSV writes products, header first, in the given order. Images are
// left out.
func WriteCSV(w io.Writer, products []Product) error {
	rows := make([]*productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &productRow{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       fmt.Sprintf("%.2f", p.Price),
			Stock:       p.Stock,
			Status:      p.Status,
			Description: p.Description,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("catalog: write csv: %w", err)
	}
	return nil
}
