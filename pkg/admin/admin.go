package admin

import (
	"errors"
	"fmt"

	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-commerce-admin/components/catalog"
	"github.com/goliatone/go-commerce-admin/components/catalog/commands"
	"github.com/goliatone/go-commerce-admin/components/catalog/queries"
	"github.com/goliatone/go-commerce-admin/components/dashboard"
	"github.com/goliatone/go-commerce-admin/components/fixtures"
	"github.com/goliatone/go-commerce-admin/components/notify"
	"github.com/goliatone/go-commerce-admin/components/settings"
	"github.com/goliatone/go-commerce-admin/components/shell"
	"github.com/goliatone/go-commerce-admin/components/web"
	"github.com/goliatone/go-commerce-admin/components/web/gorouter"
	"github.com/goliatone/go-commerce-admin/components/web/httpapi"
	"github.com/goliatone/go-commerce-admin/pkg/config"
	"github.com/goliatone/go-commerce-admin/pkg/logging"
)

// App holds every wired component of the admin.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Fixtures   *fixtures.Document
	Catalog    *catalog.Manager
	Notices    *notify.Bus
	Inbox      *notify.Inbox
	Theme      *shell.MemoryThemeStore
	Settings   *settings.InMemoryPreferenceStore
	Dashboard  *dashboard.Service
	Controller *web.Controller
	API        *httpapi.CommandExecutor
}

// Options customizes New. Nil fields fall back to defaults.
type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Fixtures *fixtures.Document
	Renderer web.Renderer
}

// New loads fixtures and wires the catalog, notices, shell, settings,
// dashboard and web layers together.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	telemetry := logging.NewTelemetry(logger)

	doc, err := loadFixtures(opts.Fixtures, cfg.Fixtures)
	if err != nil {
		return nil, err
	}
	theme, err := shell.ParseTheme(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}

	bus := notify.NewBus(notify.WithTelemetry(telemetry))
	inbox := notify.NewInbox(cfg.Notices.InboxLimit)
	if err := errors.Join(
		bus.Subscribe(inbox.Push),
		bus.Subscribe(logging.NoticeLogger(logger)),
	); err != nil {
		return nil, fmt.Errorf("admin: subscribe notices: %w", err)
	}

	manager := catalog.NewManager(catalog.Options{
		Seed:      SeedProducts(doc.Products),
		Notifier:  bus,
		Telemetry: telemetry,
	})

	charts := dashboard.NewChartRenderer(
		dashboard.WithChartCache(dashboard.NewChartCache(cfg.Charts.CacheTTL)),
		dashboard.WithChartAssetsHost(cfg.Charts.AssetsHost),
		dashboard.WithChartHeight(cfg.Charts.Height),
	)
	widgets := dashboard.NewService(dashboard.Options{Telemetry: telemetry})
	if err := dashboard.RegisterCommerceWidgets(widgets.Registry(), doc, charts); err != nil {
		return nil, err
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer, err = web.NewTemplateRenderer(web.WithTemplateDir(cfg.Templates))
		if err != nil {
			return nil, fmt.Errorf("admin: templates: %w", err)
		}
	}

	themeStore := shell.NewThemeStore(theme, telemetry)
	prefs := settings.NewInMemoryPreferenceStore(seedPreferences(doc.Preferences), telemetry)

	list := queries.NewProductListQuery(manager)
	selection := commands.NewToggleSelectionCommand(manager, telemetry)
	remove := commands.NewBulkDeleteCommand(manager, telemetry)
	create := commands.NewCreateProductCommand(manager, telemetry)

	controller := web.NewController(web.ControllerOptions{
		Renderer:     renderer,
		Menu:         shell.DefaultMenu(),
		Theme:        themeStore,
		Products:     list,
		Dialog:       manager,
		Selection:    selection,
		Delete:       remove,
		Create:       create,
		UpdateDialog: commands.NewUpdateDialogCommand(manager, telemetry),
		Widgets:      widgets,
		Preferences:  prefs,
		Notices:      inbox,
		Fixtures:     doc,
		Telemetry:    telemetry,
	})

	return &App{
		Config:     cfg,
		Logger:     logger,
		Fixtures:   doc,
		Catalog:    manager,
		Notices:    bus,
		Inbox:      inbox,
		Theme:      themeStore,
		Settings:   prefs,
		Dashboard:  widgets,
		Controller: controller,
		API: &httpapi.CommandExecutor{
			ListQuerier:        list,
			CreateCommander:    create,
			SelectionCommander: selection,
			DeleteCommander:    remove,
			Theme:              themeStore,
		},
	}, nil
}

// Mount registers pages, export and API routes on r.
func Mount[T any](app *App, r router.Router[T]) error {
	if app == nil {
		return errors.New("admin: app is required")
	}
	return gorouter.Register(gorouter.Config[T]{
		Router:     r,
		Controller: app.Controller,
		API:        app.API,
	})
}

// SeedProducts converts fixture rows into catalog products.
func SeedProducts(records []fixtures.ProductRecord) []catalog.Product {
	out := make([]catalog.Product, 0, len(records))
	for _, r := range records {
		out = append(out, catalog.Product{
			ID:          r.ID,
			Name:        r.Name,
			Category:    r.Category,
			Price:       r.Price,
			Stock:       r.Stock,
			Status:      r.Status,
			Description: r.Description,
		})
	}
	return out
}

func seedPreferences(records []fixtures.Preference) []settings.Preference {
	out := make([]settings.Preference, 0, len(records))
	for _, r := range records {
		out = append(out, settings.Preference{Key: r.Key, Label: r.Label, Enabled: r.Enabled})
	}
	return out
}

func loadFixtures(doc *fixtures.Document, path string) (*fixtures.Document, error) {
	if doc != nil {
		return doc, nil
	}
	if path != "" {
		return fixtures.ReadFile(path)
	}
	return fixtures.Default()
}
