package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/spf13/cast"

	"github.com/goliatone/go-commerce-admin/components/catalog"
	"github.com/goliatone/go-commerce-admin/components/catalog/commands"
	"github.com/goliatone/go-commerce-admin/components/catalog/queries"
	"github.com/goliatone/go-commerce-admin/components/shell"
)

// Executor is the JSON API surface behind the go-router routes.
type Executor interface {
	Products(ctx context.Context) (queries.ProductList, error)
	Create(ctx context.Context, draft catalog.Draft) (catalog.Product, error)
	Select(ctx context.Context, input commands.ToggleSelectionInput) error
	DeleteSelected(ctx context.Context) (int, error)
	Breadcrumbs(path string) []shell.Breadcrumb
	ToggleTheme(ctx context.Context) shell.Theme
}

// CommandExecutor implements Executor on top of the catalog commands.
type CommandExecutor struct {
	ListQuerier        gocommand.Querier[queries.ProductListInput, queries.ProductList]
	CreateCommander    gocommand.Commander[commands.CreateProductInput]
	SelectionCommander gocommand.Commander[commands.ToggleSelectionInput]
	DeleteCommander    gocommand.Commander[commands.BulkDeleteInput]
	Theme              shell.ThemeStore
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Products(ctx context.Context) (queries.ProductList, error) {
	if e.ListQuerier == nil {
		return queries.ProductList{}, errors.New("httpapi: product query is not configured")
	}
	return e.ListQuerier.Query(ctx, queries.ProductListInput{})
}

func (e *CommandExecutor) Create(ctx context.Context, draft catalog.Draft) (catalog.Product, error) {
	if e.CreateCommander == nil {
		return catalog.Product{}, errors.New("httpapi: create command is not configured")
	}
	var product catalog.Product
	err := e.CreateCommander.Execute(ctx, commands.CreateProductInput{Draft: draft, Result: &product})
	return product, err
}

func (e *CommandExecutor) Select(ctx context.Context, input commands.ToggleSelectionInput) error {
	if e.SelectionCommander == nil {
		return errors.New("httpapi: selection command is not configured")
	}
	return e.SelectionCommander.Execute(ctx, input)
}

func (e *CommandExecutor) DeleteSelected(ctx context.Context) (int, error) {
	if e.DeleteCommander == nil {
		return 0, errors.New("httpapi: delete command is not configured")
	}
	var removed int
	err := e.DeleteCommander.Execute(ctx, commands.BulkDeleteInput{Removed: &removed})
	return removed, err
}

func (e *CommandExecutor) Breadcrumbs(path string) []shell.Breadcrumb {
	return shell.DeriveBreadcrumbs(path)
}

func (e *CommandExecutor) ToggleTheme(ctx context.Context) shell.Theme {
	if e.Theme == nil {
		return shell.ThemeLight
	}
	return e.Theme.Toggle(ctx)
}

type draftPayload struct {
	Name        any `json:"name"`
	Price       any `json:"price"`
	Category    any `json:"category"`
	Stock       any `json:"stock"`
	Description any `json:"description"`
}

// DecodeDraft reads a create payload. Fields may be strings or JSON numbers;
// either way they reach validation as raw strings.
func DecodeDraft(body []byte) (catalog.Draft, error) {
	var payload draftPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return catalog.Draft{}, fmt.Errorf("httpapi: decode draft: %w", err)
	}
	return catalog.Draft{
		Name:        cast.ToString(payload.Name),
		Price:       cast.ToString(payload.Price),
		Category:    cast.ToString(payload.Category),
		Stock:       cast.ToString(payload.Stock),
		Description: cast.ToString(payload.Description),
	}, nil
}

// ErrorBody is the JSON error envelope. Fields is set for validation errors.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// CreateError maps a create failure to a status and body: validation errors
// are 422 with per-field messages, anything else is 500.
func CreateError(err error) (int, ErrorBody) {
	if verr, ok := catalog.AsValidationError(err); ok {
		return http.StatusUnprocessableEntity, ErrorBody{Error: verr.Error(), Fields: verr.Fields}
	}
	return http.StatusInternalServerError, ErrorBody{Error: err.Error()}
}

// Response is a status code plus the payload to encode as JSON. Transports
// write it as-is.
type Response struct {
	Status int
	Body   any
}

func fail(status int, err error) Response {
	return Response{Status: status, Body: ErrorBody{Error: err.Error()}}
}

// ListProducts answers GET /products.
func ListProducts(ctx context.Context, api Executor) Response {
	list, err := api.Products(ctx)
	if err != nil {
		return fail(http.StatusInternalServerError, err)
	}
	return Response{Status: http.StatusOK, Body: list}
}

// CreateProduct answers POST /products with the created product, a 400 for
// an unreadable payload, or the CreateError mapping.
func CreateProduct(ctx context.Context, api Executor, body []byte) Response {
	draft, err := DecodeDraft(body)
	if err != nil {
		return fail(http.StatusBadRequest, err)
	}
	product, err := api.Create(ctx, draft)
	if err != nil {
		status, errBody := CreateError(err)
		return Response{Status: status, Body: errBody}
	}
	return Response{Status: http.StatusCreated, Body: product}
}

// ToggleSelection answers POST /products/selection with the refreshed list.
func ToggleSelection(ctx context.Context, api Executor, body []byte) Response {
	var input commands.ToggleSelectionInput
	if err := json.Unmarshal(body, &input); err != nil {
		return fail(http.StatusBadRequest, fmt.Errorf("httpapi: decode selection: %w", err))
	}
	if err := api.Select(ctx, input); err != nil {
		return fail(http.StatusBadRequest, err)
	}
	return ListProducts(ctx, api)
}

// DeleteSelected answers DELETE /products/selection.
func DeleteSelected(ctx context.Context, api Executor) Response {
	removed, err := api.DeleteSelected(ctx)
	if err != nil {
		return fail(http.StatusInternalServerError, err)
	}
	return Response{Status: http.StatusOK, Body: map[string]int{"removed": removed}}
}

func Breadcrumbs(api Executor, path string) Response {
	return Response{Status: http.StatusOK, Body: api.Breadcrumbs(path)}
}

func ToggleTheme(ctx context.Context, api Executor) Response {
	theme := api.ToggleTheme(ctx)
	return Response{Status: http.StatusOK, Body: map[string]string{"theme": string(theme)}}
}
