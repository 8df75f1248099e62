package web

import (
	"fmt"
	"time"

	"github.com/goliatone/go-commerce-admin/components/catalog"
	"github.com/goliatone/go-commerce-admin/components/catalog/queries"
	"github.com/goliatone/go-commerce-admin/components/fixtures"
	"github.com/goliatone/go-commerce-admin/components/notify"
	"github.com/goliatone/go-commerce-admin/components/settings"
)

// Template data is built as plain maps so pongo2 never has to call methods.

func productsView(list queries.ProductList, dialog catalog.DialogState) map[string]any {
	selected := make(map[int64]bool, len(list.Selected))
	for _, id := range list.Selected {
		selected[id] = true
	}
	rows := make([]map[string]any, 0, len(list.Products))
	for _, p := range list.Products {
		rows = append(rows, map[string]any{
			"id":            p.ID,
			"name":          p.Name,
			"category":      p.Category,
			"price":         p.PriceLabel(),
			"stock":         p.Stock,
			"status":        p.Status,
			"badge":         p.Badge(),
			"badge_variant": p.BadgeVariant(),
			"description":   p.Description,
			"image":         p.Image,
			"selected":      selected[p.ID],
		})
	}
	errs := make(map[string]string, len(dialog.Errors))
	for key, msg := range dialog.Errors {
		errs[key] = msg
	}
	return map[string]any{
		"products":       rows,
		"selected_count": len(list.Selected),
		"all_selected":   list.AllSelected,
		"has_selection":  len(list.Selected) > 0,
		"categories":     catalog.Categories,
		"dialog": map[string]any{
			"open":        dialog.Open,
			"name":        dialog.Draft.Name,
			"price":       dialog.Draft.Price,
			"category":    dialog.Draft.Category,
			"stock":       dialog.Draft.Stock,
			"description": dialog.Draft.Description,
			"errors":      errs,
			"has_errors":  len(errs) > 0,
		},
	}
}

func ordersView(orders []fixtures.Order) map[string]any {
	rows := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		variant := "outline"
		if o.Status == "Delivered" {
			variant = "secondary"
		}
		rows = append(rows, map[string]any{
			"id":            o.ID,
			"customer":      o.Customer,
			"date":          o.Date,
			"status":        o.Status,
			"badge_variant": variant,
			"total":         fmt.Sprintf("$%.2f", o.Total),
		})
	}
	return map[string]any{"orders": rows}
}

func customersView(customers []fixtures.Customer) map[string]any {
	rows := make([]map[string]any, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, map[string]any{
			"name":    c.Name,
			"email":   c.Email,
			"orders":  c.Orders,
			"spent":   fmt.Sprintf("$%.2f", c.Spent),
			"segment": c.Segment,
		})
	}
	return map[string]any{"customers": rows}
}

func settingsView(prefs []settings.Preference) map[string]any {
	rows := make([]map[string]any, 0, len(prefs))
	for _, p := range prefs {
		rows = append(rows, map[string]any{
			"key":     p.Key,
			"label":   p.Label,
			"enabled": p.Enabled,
		})
	}
	return map[string]any{"preferences": rows}
}

func noticesView(notices []notify.Notice) []map[string]any {
	out := make([]map[string]any, 0, len(notices))
	for _, n := range notices {
		out = append(out, map[string]any{
			"id":          n.ID,
			"kind":        string(n.Kind),
			"title":       n.Title,
			"description": n.Description,
			"time":        n.CreatedAt.Format(time.Kitchen),
		})
	}
	return out
}
