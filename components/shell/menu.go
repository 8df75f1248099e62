package shell

import "strings"

// MenuItem is one side-menu route.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

// MenuEntry is a MenuItem resolved against the current path.
type MenuEntry struct {
	MenuItem
	Active bool `json:"active"`
}

// Menu is the fixed side navigation.
type Menu struct {
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}

// DefaultMenu returns the admin navigation in display order.
func DefaultMenu() Menu {
	return Menu{
		Title: "Commerce Admin",
		Items: []MenuItem{
			{Label: "Dashboard", Path: "/", Icon: "layout-dashboard"},
			{Label: "Products", Path: "/products", Icon: "package"},
			{Label: "Orders", Path: "/orders", Icon: "shopping-cart"},
			{Label: "Customers", Path: "/customers", Icon: "users"},
			{Label: "Analytics", Path: "/analytics", Icon: "bar-chart-3"},
			{Label: "Settings", Path: "/settings", Icon: "settings"},
		},
	}
}

// Resolve marks the item whose path equals the current path. Matching is
// exact, so "/products/new" activates nothing.
func (m Menu) Resolve(path string) []MenuEntry {
	path = NormalizePath(path)
	out := make([]MenuEntry, len(m.Items))
	for i, item := range m.Items {
		out[i] = MenuEntry{MenuItem: item, Active: item.Path == path}
	}
	return out
}

// Active returns the item matching path, if any.
func (m Menu) Active(path string) (MenuItem, bool) {
	path = NormalizePath(path)
	for _, item := range m.Items {
		if item.Path == path {
			return item, true
		}
	}
	return MenuItem{}, false
}

// Paths lists every routable path in menu order.
func (m Menu) Paths() []string {
	out := make([]string, len(m.Items))
	for i, item := range m.Items {
		out[i] = item.Path
	}
	return out
}

// NormalizePath drops any query or fragment and trailing slashes; the empty
// path becomes "/".
func NormalizePath(path string) string {
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
