package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-commerce-admin/components/catalog"
)

// ProductListInput has no filters; the table always shows every row.
type ProductListInput struct{}

// ProductList is the read model behind the product table.
type ProductList struct {
	Products    []catalog.Product `json:"products"`
	Selected    []int64           `json:"selected"`
	AllSelected bool              `json:"all_selected"`
}

type productService interface {
	Products() []catalog.Product
	Selected() []int64
	AllSelected() bool
}

// ProductListQuery snapshots the product table.
type ProductListQuery struct {
	service productService
}

// NewProductListQuery builds the query.
func NewProductListQuery(service productService) *ProductListQuery {
	return &ProductListQuery{service: service}
}

var _ gocommand.Querier[ProductListInput, ProductList] = (*ProductListQuery)(nil)

// Query returns products most-recent-first with the current selection.
func (q *ProductListQuery) Query(_ context.Context, _ ProductListInput) (ProductList, error) {
	return ProductList{
		Products:    q.service.Products(),
		Selected:    q.service.Selected(),
		AllSelected: q.service.AllSelected(),
	}, nil
}
