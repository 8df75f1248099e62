package gorouter

import (
	"bytes"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-commerce-admin/components/dashboard"
	"github.com/goliatone/go-commerce-admin/components/web"
	"github.com/goliatone/go-commerce-admin/components/web/httpapi"
)

// Config wires go-router with the admin controller and JSON API.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *web.Controller
	API        httpapi.Executor
	Routes     RouteConfig
}

// RouteConfig customizes the paths used outside the page menu.
type RouteConfig struct {
	API    string
	Export string
}

// Register mounts the admin pages, the CSV export and the JSON API.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)

	for _, path := range cfg.Controller.Menu().Paths() {
		registerPage(cfg.Router, cfg.Controller, path)
	}

	cfg.Router.Get(routes.Export, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.ExportCSV(ctx.Context(), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/csv; charset=utf-8")
		ctx.SetHeader("Content-Disposition", `attachment; filename="products.csv"`)
		return ctx.Send(buf.Bytes())
	}))

	if cfg.API != nil {
		registerAPI(cfg.Router.Group(routes.API), cfg.API)
	}
	return nil
}

func registerPage[T any](r router.Router[T], controller *web.Controller, path string) {
	render := func(ctx router.Context) error {
		var buf bytes.Buffer
		req := web.PageRequest{
			Path:   path,
			Params: map[string]string{dashboard.DateParam: ctx.Query(dashboard.DateParam)},
		}
		if err := controller.Page(ctx.Context(), req, &buf); err != nil {
			return respondError(ctx, StatusFor(err), err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}

	r.Get(path, router.WrapHandler(render))

	r.Post(path, router.WrapHandler(func(ctx router.Context) error {
		form, err := web.ParseForm(ctx.Header("Content-Type"), ctx.Body())
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := controller.Act(ctx.Context(), path, form); err != nil {
			return respondError(ctx, StatusFor(err), err)
		}
		return render(ctx)
	}))
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor) {
	r.Get("/products", router.WrapHandler(func(ctx router.Context) error {
		return reply(ctx, httpapi.ListProducts(ctx.Context(), api))
	}))

	r.Post("/products", router.WrapHandler(func(ctx router.Context) error {
		return reply(ctx, httpapi.CreateProduct(ctx.Context(), api, ctx.Body()))
	}))

	r.Post("/products/selection", router.WrapHandler(func(ctx router.Context) error {
		return reply(ctx, httpapi.ToggleSelection(ctx.Context(), api, ctx.Body()))
	}))

	r.Delete("/products/selection", router.WrapHandler(func(ctx router.Context) error {
		return reply(ctx, httpapi.DeleteSelected(ctx.Context(), api))
	}))

	r.Get("/breadcrumbs", router.WrapHandler(func(ctx router.Context) error {
		return reply(ctx, httpapi.Breadcrumbs(api, ctx.Query("path")))
	}))

	r.Post("/theme/toggle", router.WrapHandler(func(ctx router.Context) error {
		return reply(ctx, httpapi.ToggleTheme(ctx.Context(), api))
	}))
}

func reply(ctx router.Context, res httpapi.Response) error {
	return ctx.JSON(res.Status, res.Body)
}

// StatusFor maps controller errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, web.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, web.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, httpapi.ErrorBody{Error: err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.API == "" {
		routes.API = "/api"
	}
	if routes.Export == "" {
		routes.Export = "/products/export.csv"
	}
	return routes
}

// Route is one endpoint mounted by Register.
type Route struct {
	Method string
	Path   string
}

// Describe lists what Register mounts for the given page paths, in
// registration order.
func Describe(pages []string, cfg RouteConfig, withAPI bool) []Route {
	routes := defaultRouteConfig(cfg)
	out := make([]Route, 0, len(pages)*2+7)
	for _, path := range pages {
		out = append(out, Route{http.MethodGet, path}, Route{http.MethodPost, path})
	}
	out = append(out, Route{http.MethodGet, routes.Export})
	if withAPI {
		out = append(out,
			Route{http.MethodGet, routes.API + "/products"},
			Route{http.MethodPost, routes.API + "/products"},
			Route{http.MethodPost, routes.API + "/products/selection"},
			Route{http.MethodDelete, routes.API + "/products/selection"},
			Route{http.MethodGet, routes.API + "/breadcrumbs"},
			Route{http.MethodPost, routes.API + "/theme/toggle"},
		)
	}
	return out
}
