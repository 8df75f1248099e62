package web

import (
	"context"
	"errors"
	"fmt"
	"io"

	gocommand "github.com/goliatone/go-command"
	"github.com/spf13/cast"

	"github.com/goliatone/go-commerce-admin/components/catalog"
	"github.com/goliatone/go-commerce-admin/components/catalog/commands"
	"github.com/goliatone/go-commerce-admin/components/catalog/queries"
	"github.com/goliatone/go-commerce-admin/components/dashboard"
	"github.com/goliatone/go-commerce-admin/components/fixtures"
	"github.com/goliatone/go-commerce-admin/components/notify"
	"github.com/goliatone/go-commerce-admin/components/settings"
	"github.com/goliatone/go-commerce-admin/components/shell"
)

var (
	// ErrPageNotFound is returned for paths outside the menu.
	ErrPageNotFound = errors.New("web: page not found")
	// ErrUnknownAction is returned when a form posts an action the page does
	// not handle.
	ErrUnknownAction = errors.New("web: unknown action")
)

// Page actions posted in the "action" form field.
const (
	ActionToggleTheme      = "toggle_theme"
	ActionToggle           = "toggle"
	ActionSelectAll        = "select_all"
	ActionClearAll         = "clear_all"
	ActionDeleteSelected   = "delete_selected"
	ActionOpenDialog       = "open_dialog"
	ActionCancelDialog     = "cancel_dialog"
	ActionSelectCategory   = "select_category"
	ActionCreate           = "create"
	ActionTogglePreference = "toggle_preference"
)

// AreaResolver resolves dashboard widget areas.
type AreaResolver interface {
	ResolveArea(ctx context.Context, area string, view dashboard.ViewContext) ([]dashboard.ResolvedWidget, error)
}

// PreferenceStore lists and flips settings switches.
type PreferenceStore interface {
	List() []settings.Preference
	Toggle(ctx context.Context, key string) (settings.Preference, error)
}

// NoticeSource hands out queued notices once.
type NoticeSource interface {
	Drain() []notify.Notice
}

// DialogSource exposes the create dialog state.
type DialogSource interface {
	Dialog() catalog.DialogState
}

// ControllerOptions wires the page collaborators.
type ControllerOptions struct {
	Renderer     Renderer
	Menu         shell.Menu
	Theme        shell.ThemeStore
	Products     gocommand.Querier[queries.ProductListInput, queries.ProductList]
	Dialog       DialogSource
	Selection    gocommand.Commander[commands.ToggleSelectionInput]
	Delete       gocommand.Commander[commands.BulkDeleteInput]
	Create       gocommand.Commander[commands.CreateProductInput]
	UpdateDialog gocommand.Commander[commands.UpdateDialogInput]
	Widgets      AreaResolver
	Preferences  PreferenceStore
	Notices      NoticeSource
	Fixtures     *fixtures.Document
	Telemetry    Telemetry
}

// PageRequest identifies the page to render. Params carries query values
// such as the analytics date.
type PageRequest struct {
	Path   string
	Params map[string]string
}

// Controller renders admin pages and applies posted page actions.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the collaborators into a controller.
func NewController(opts ControllerOptions) *Controller {
	if len(opts.Menu.Items) == 0 {
		opts.Menu = shell.DefaultMenu()
	}
	if opts.Theme == nil {
		opts.Theme = shell.NewThemeStore(shell.ThemeLight, nil)
	}
	if opts.Fixtures == nil {
		opts.Fixtures = &fixtures.Document{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Controller{opts: opts}
}

// Menu exposes the navigation the controller serves.
func (c *Controller) Menu() shell.Menu {
	return c.opts.Menu
}

// Act applies a posted form to the page at path. Validation failures from
// the create dialog are not errors; they are kept in the dialog state and
// shown when the page renders.
func (c *Controller) Act(ctx context.Context, path string, form Form) error {
	path = shell.NormalizePath(path)
	if _, ok := c.opts.Menu.Active(path); !ok {
		return ErrPageNotFound
	}
	action := form.Action()
	defer c.opts.Telemetry.Record(ctx, "web.page.action", map[string]any{"path": path, "action": action})

	if action == ActionToggleTheme {
		c.opts.Theme.Toggle(ctx)
		return nil
	}
	switch path {
	case "/products":
		return c.productAction(ctx, action, form)
	case "/settings":
		if action != ActionTogglePreference {
			break
		}
		if c.opts.Preferences == nil {
			return errors.New("web: preference store is not configured")
		}
		if _, err := c.opts.Preferences.Toggle(ctx, form.Get("key")); err != nil {
			return fmt.Errorf("web: toggle preference: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q on %s", ErrUnknownAction, action, path)
}

func (c *Controller) productAction(ctx context.Context, action string, form Form) error {
	switch action {
	case ActionToggle:
		id, err := cast.ToInt64E(form.Get("id"))
		if err != nil {
			return fmt.Errorf("web: product id: %w", err)
		}
		return execute(ctx, c.opts.Selection, commands.ToggleSelectionInput{ID: id})
	case ActionSelectAll:
		return execute(ctx, c.opts.Selection, commands.ToggleSelectionInput{All: true, Checked: true})
	case ActionClearAll:
		return execute(ctx, c.opts.Selection, commands.ToggleSelectionInput{All: true})
	case ActionDeleteSelected:
		return execute(ctx, c.opts.Delete, commands.BulkDeleteInput{})
	case ActionOpenDialog:
		return execute(ctx, c.opts.UpdateDialog, commands.UpdateDialogInput{Action: commands.DialogOpen})
	case ActionCancelDialog:
		return execute(ctx, c.opts.UpdateDialog, commands.UpdateDialogInput{Action: commands.DialogCancel})
	case ActionSelectCategory:
		return execute(ctx, c.opts.UpdateDialog, commands.UpdateDialogInput{
			Action:   commands.DialogCategory,
			Category: form.Get("category"),
		})
	case ActionCreate:
		err := execute(ctx, c.opts.Create, commands.CreateProductInput{Draft: form.Draft()})
		if _, ok := catalog.AsValidationError(err); ok {
			return nil
		}
		return err
	default:
		return fmt.Errorf("%w: %q on /products", ErrUnknownAction, action)
	}
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errors.New("web: command is not configured")
	}
	return cmd.Execute(ctx, msg)
}

// Page renders the page at req.Path inside the shell layout. Queued notices
// are drained into the rendered page.
func (c *Controller) Page(ctx context.Context, req PageRequest, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("web: renderer is not configured")
	}
	path := shell.NormalizePath(req.Path)
	item, ok := c.opts.Menu.Active(path)
	if !ok {
		return ErrPageNotFound
	}
	selection := shell.Select(c.opts.Theme.Theme())

	page, err := c.pageData(ctx, path, req.Params, selection)
	if err != nil {
		return err
	}
	content, err := c.opts.Renderer.Render(pageTemplate(path), page)
	if err != nil {
		return fmt.Errorf("web: render %s: %w", path, err)
	}

	layout := c.layoutData(path, item, selection)
	layout["content"] = content
	if _, err := c.opts.Renderer.Render("layout", layout, out); err != nil {
		return fmt.Errorf("web: render layout: %w", err)
	}
	c.opts.Telemetry.Record(ctx, "web.page.render", map[string]any{"path": path, "theme": string(selection.Name)})
	return nil
}

// ExportCSV writes the current product list as CSV.
func (c *Controller) ExportCSV(ctx context.Context, w io.Writer) error {
	list, err := c.productList(ctx)
	if err != nil {
		return err
	}
	return catalog.WriteCSV(w, list.Products)
}

func (c *Controller) productList(ctx context.Context) (queries.ProductList, error) {
	if c.opts.Products == nil {
		return queries.ProductList{}, errors.New("web: product query is not configured")
	}
	list, err := c.opts.Products.Query(ctx, queries.ProductListInput{})
	if err != nil {
		return queries.ProductList{}, fmt.Errorf("web: product list: %w", err)
	}
	return list, nil
}

func (c *Controller) pageData(ctx context.Context, path string, params map[string]string, selection *shell.ThemeSelection) (map[string]any, error) {
	switch path {
	case "/":
		widgets, err := c.renderArea(ctx, dashboard.AreaOverview, dashboard.ViewContext{ChartTheme: selection.ChartTheme, Params: params})
		if err != nil {
			return nil, err
		}
		return map[string]any{"widgets": widgets}, nil
	case "/products":
		list, err := c.productList(ctx)
		if err != nil {
			return nil, err
		}
		var dialog catalog.DialogState
		if c.opts.Dialog != nil {
			dialog = c.opts.Dialog.Dialog()
		}
		return productsView(list, dialog), nil
	case "/orders":
		return ordersView(c.opts.Fixtures.Orders), nil
	case "/customers":
		return customersView(c.opts.Fixtures.Customers), nil
	case "/analytics":
		widgets, err := c.renderArea(ctx, dashboard.AreaAnalytics, dashboard.ViewContext{ChartTheme: selection.ChartTheme, Params: params})
		if err != nil {
			return nil, err
		}
		return map[string]any{"widgets": widgets, "date": params[dashboard.DateParam]}, nil
	case "/settings":
		var prefs []settings.Preference
		if c.opts.Preferences != nil {
			prefs = c.opts.Preferences.List()
		}
		return settingsView(prefs), nil
	}
	return nil, ErrPageNotFound
}

// renderArea resolves an area and renders each widget partial. A widget
// whose provider or template failed renders as an error card.
func (c *Controller) renderArea(ctx context.Context, area string, view dashboard.ViewContext) ([]map[string]any, error) {
	if c.opts.Widgets == nil {
		return nil, nil
	}
	resolved, err := c.opts.Widgets.ResolveArea(ctx, area, view)
	if err != nil {
		return nil, fmt.Errorf("web: resolve %s: %w", area, err)
	}
	out := make([]map[string]any, 0, len(resolved))
	for _, widget := range resolved {
		card := map[string]any{
			"code":  widget.Definition.Code,
			"title": widget.Definition.Name,
		}
		if widget.Err != nil {
			card["error"] = "This widget is unavailable."
			out = append(out, card)
			continue
		}
		data := map[string]any{"title": widget.Definition.Name}
		for key, value := range widget.Data {
			data[key] = value
		}
		html, err := c.opts.Renderer.Render(widget.Definition.Template, data)
		if err != nil {
			c.opts.Telemetry.Record(ctx, "web.widget.render_error", map[string]any{
				"code":  widget.Definition.Code,
				"error": err.Error(),
			})
			card["error"] = "This widget is unavailable."
		} else {
			card["html"] = html
		}
		out = append(out, card)
	}
	return out, nil
}

func (c *Controller) layoutData(path string, item shell.MenuItem, selection *shell.ThemeSelection) map[string]any {
	var notices []notify.Notice
	if c.opts.Notices != nil {
		notices = c.opts.Notices.Drain()
	}
	title := c.opts.Fixtures.Title
	if title == "" {
		title = c.opts.Menu.Title
	}
	return map[string]any{
		"site_title":  title,
		"page_title":  documentTitle(path, item),
		"path":        path,
		"menu":        c.opts.Menu.Resolve(path),
		"breadcrumbs": shell.DeriveBreadcrumbs(path),
		"theme": map[string]any{
			"name":       string(selection.Name),
			"root_class": selection.RootClass,
			"css":        selection.CSSVariablesInline(),
			"next":       string(selection.Name.Opposite()),
		},
		"notices": noticesView(notices),
	}
}

func pageTemplate(path string) string {
	if path == "/" {
		return "dashboard"
	}
	return path[1:]
}

func documentTitle(path string, item shell.MenuItem) string {
	if path == "/" {
		return "E-commerce Admin Dashboard"
	}
	return item.Label + " | E-commerce Admin"
}
