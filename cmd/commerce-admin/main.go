package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-commerce-admin/components/fixtures"
	"github.com/goliatone/go-commerce-admin/components/shell"
	"github.com/goliatone/go-commerce-admin/components/web/gorouter"
	"github.com/goliatone/go-commerce-admin/pkg/admin"
	"github.com/goliatone/go-commerce-admin/pkg/config"
	"github.com/goliatone/go-commerce-admin/pkg/logging"
)

type cli struct {
	Config string `type:"path" short:"c" env:"COMMERCE_ADMIN_CONFIG" help:"Path to a YAML config file."`

	Serve         serveCmd         `cmd:"" default:"1" help:"Start the admin web server."`
	Routes        routesCmd        `cmd:"" help:"Print the registered page, export and API routes."`
	Export        exportCmd        `cmd:"" help:"Write the product catalog as CSV."`
	CheckFixtures checkFixturesCmd `cmd:"" name:"check-fixtures" help:"Validate a fixture document."`
}

type serveCmd struct {
	Addr      string `help:"Listen address (overrides server.addr)."`
	Theme     string `help:"Initial theme, light or dark (overrides theme)."`
	Fixtures  string `type:"path" help:"Fixture document to seed from."`
	Templates string `type:"existingdir" help:"Serve templates from this directory instead of the embedded set."`
}

type routesCmd struct {
	Format string `enum:"table,yaml" default:"table" help:"Output format."`
	NoAPI  bool   `name:"no-api" help:"Omit the JSON API routes."`
}

type exportCmd struct {
	Fixtures string `type:"path" help:"Fixture document to seed from."`
	Out      string `short:"o" default:"-" help:"Output file, or - for stdout."`
}

type checkFixturesCmd struct {
	Path string `arg:"" type:"existingfile" help:"Fixture document (YAML or JSON)."`
}

func main() {
	var args cli
	ctx := kong.Parse(&args,
		kong.Name("commerce-admin"),
		kong.Description("E-commerce admin dashboard with a product catalog, orders, customers and analytics."),
		kong.UsageOnError(),
		kong.Bind(&args),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("commerce-admin: %w", err)
	}
	return cfg, nil
}

func (cmd *serveCmd) Run(root *cli) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}
	if cmd.Theme != "" {
		cfg.Theme = cmd.Theme
	}
	if cmd.Fixtures != "" {
		cfg.Fixtures = cmd.Fixtures
	}
	if cmd.Templates != "" {
		cfg.Templates = cmd.Templates
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("commerce-admin: %w", err)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("commerce-admin: logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	app, err := admin.New(admin.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	server := router.NewFiberAdapter()
	if err := admin.Mount[*fiber.App](app, server.Router()); err != nil {
		return fmt.Errorf("commerce-admin: register routes: %w", err)
	}

	logger.Info("commerce admin ready",
		zap.String("addr", cfg.Server.Addr),
		zap.String("theme", cfg.Theme),
		zap.Int("products", len(app.Catalog.Products())),
		zap.String("fixtures", app.Fixtures.Source),
	)
	if err := server.Serve(cfg.Server.Addr); err != nil {
		return fmt.Errorf("commerce-admin: serve: %w", err)
	}
	return nil
}

func (cmd *routesCmd) Run() error {
	routes := gorouter.Describe(shell.DefaultMenu().Paths(), gorouter.RouteConfig{}, !cmd.NoAPI)
	return writeRoutes(os.Stdout, routes, cmd.Format)
}

type routeEntry struct {
	Name   string `yaml:"name"`
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

func writeRoutes(w io.Writer, routes []gorouter.Route, format string) error {
	entries := make([]routeEntry, 0, len(routes))
	for _, r := range routes {
		entries = append(entries, routeEntry{
			Name:   routeName(r),
			Method: r.Method,
			Path:   r.Path,
		})
	}
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"routes": entries}); err != nil {
			return fmt.Errorf("commerce-admin: encode routes: %w", err)
		}
		return enc.Close()
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETHOD\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Method, e.Path)
	}
	return tw.Flush()
}

var routeSeparators = strings.NewReplacer("/", " ", ".", " ", "-", " ")

// routeName derives a stable identifier such as "get_api_products". The root
// page is named after the dashboard.
func routeName(r gorouter.Route) string {
	words := strings.TrimSpace(routeSeparators.Replace(r.Path))
	if words == "" {
		words = "dashboard"
	}
	return strcase.ToSnake(r.Method + " " + words)
}

func (cmd *exportCmd) Run(ctx context.Context, root *cli) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if cmd.Fixtures != "" {
		cfg.Fixtures = cmd.Fixtures
	}
	app, err := admin.New(admin.Options{Config: cfg})
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if cmd.Out != "" && cmd.Out != "-" {
		file, err := os.Create(cmd.Out)
		if err != nil {
			return fmt.Errorf("commerce-admin: create %s: %w", cmd.Out, err)
		}
		defer file.Close()
		out = file
	}
	return app.Controller.ExportCSV(ctx, out)
}

func (cmd *checkFixturesCmd) Run() error {
	doc, err := fixtures.ReadFile(cmd.Path)
	if err != nil {
		return err
	}
	return writeFixtureSummary(os.Stdout, doc)
}

func writeFixtureSummary(w io.Writer, doc *fixtures.Document) error {
	_, err := fmt.Fprintf(w, "%s: ok (version %s, %d products, %d orders, %d customers, %d preferences)\n",
		doc.Source, doc.Version, len(doc.Products), len(doc.Orders), len(doc.Customers), len(doc.Preferences))
	return err
}
