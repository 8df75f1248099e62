package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-commerce-admin/components/fixtures"
)

// Widget codes registered by RegisterCommerceWidgets.
const (
	WidgetMetrics          = "commerce.widget.metrics"
	WidgetRevenueTrend     = "commerce.widget.revenue_trend"
	WidgetSalesByCategory  = "commerce.widget.sales_by_category"
	WidgetOrderStatus      = "commerce.widget.order_status"
	WidgetRecentOrders     = "commerce.widget.recent_orders"
	WidgetLowStock         = "commerce.widget.low_stock"
	WidgetQuickActions     = "commerce.widget.quick_actions"
	WidgetRevenueAnalytics = "commerce.widget.revenue_analytics"
)

// DateParam is the view parameter holding the analytics date picker value.
const DateParam = "date"

// RegisterCommerceWidgets registers the overview and analytics widgets
// backed by the fixture document.
func RegisterCommerceWidgets(reg ProviderRegistry, doc *fixtures.Document, renderer *ChartRenderer) error {
	if reg == nil {
		return errors.New("dashboard: registry is required")
	}
	if doc == nil {
		return errors.New("dashboard: fixture document is required")
	}
	if renderer == nil {
		renderer = NewChartRenderer()
	}
	revenue := revenueSeries(doc.Revenue)

	entries := []struct {
		def      WidgetDefinition
		provider Provider
	}{
		{WidgetDefinition{Code: WidgetMetrics, Name: "Metrics", Area: AreaOverview, Template: "widgets/metrics"}, metricsProvider(doc.Metrics)},
		{WidgetDefinition{Code: WidgetRevenueTrend, Name: "Revenue Trend", Area: AreaOverview, Template: "widgets/chart"}, chartProvider(renderer, revenueTrendSpec(revenue, doc.Palette))},
		{WidgetDefinition{Code: WidgetSalesByCategory, Name: "Sales by Category", Area: AreaOverview, Template: "widgets/chart"}, chartProvider(renderer, namedValueSpec("pie", "Sales", doc.SalesByCategory, doc.Palette))},
		{WidgetDefinition{Code: WidgetOrderStatus, Name: "Order Status", Area: AreaOverview, Template: "widgets/chart"}, chartProvider(renderer, namedValueSpec("bar", "Orders", doc.OrderStatus, firstColor(doc.Palette)))},
		{WidgetDefinition{Code: WidgetRecentOrders, Name: "Recent Orders", Area: AreaOverview, Template: "widgets/recent_orders"}, recentOrdersProvider(doc.RecentOrders)},
		{WidgetDefinition{Code: WidgetLowStock, Name: "Low Stock Alerts", Area: AreaOverview, Template: "widgets/low_stock"}, lowStockProvider(doc.LowStock)},
		{WidgetDefinition{Code: WidgetQuickActions, Name: "Quick Actions", Area: AreaOverview, Template: "widgets/quick_actions"}, quickActionsProvider()},
		{WidgetDefinition{Code: WidgetRevenueAnalytics, Name: "Revenue", Area: AreaAnalytics, Template: "widgets/revenue_analytics"}, revenueAnalyticsProvider(renderer, revenue, firstColor(doc.Palette))},
	}
	for _, entry := range entries {
		if err := reg.RegisterDefinition(entry.def); err != nil {
			return fmt.Errorf("dashboard: register %s: %w", entry.def.Code, err)
		}
		if err := reg.RegisterProvider(entry.def.Code, entry.provider); err != nil {
			return fmt.Errorf("dashboard: register provider %s: %w", entry.def.Code, err)
		}
	}
	return nil
}

func metricsProvider(metrics []fixtures.Metric) Provider {
	return ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		cards := make([]map[string]any, 0, len(metrics))
		for _, m := range metrics {
			value := FormatCount(m.Value)
			if m.Format == "currency" {
				value = FormatCurrency(m.Value)
			}
			cards = append(cards, map[string]any{
				"key":   m.Key,
				"title": m.Title,
				"value": value,
				"trend": FormatTrend(m.Trend),
				"up":    m.Trend > 0,
				"down":  m.Trend < 0,
			})
		}
		return WidgetData{"cards": cards}, nil
	})
}

func chartProvider(renderer *ChartRenderer, spec ChartSpec) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		html, err := renderer.Render(spec, meta.View.ChartTheme)
		if err != nil {
			return nil, err
		}
		return WidgetData{
			"title":      meta.Definition.Name,
			"chart_type": spec.Type,
			"chart_html": html,
			"theme":      meta.View.ChartTheme,
		}, nil
	})
}

func recentOrdersProvider(orders []fixtures.Order) Provider {
	return ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		rows := make([]map[string]any, 0, len(orders))
		for _, o := range orders {
			rows = append(rows, map[string]any{
				"id":       o.ID,
				"customer": o.Customer,
				"total":    fmt.Sprintf("$%.2f", o.Total),
				"status":   o.Status,
			})
		}
		return WidgetData{"orders": rows}, nil
	})
}

func lowStockProvider(alerts []fixtures.StockAlert) Provider {
	return ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		items := make([]map[string]any, 0, len(alerts))
		for _, a := range alerts {
			items = append(items, map[string]any{
				"name":  a.Name,
				"stock": a.Stock,
				"label": fmt.Sprintf("%d left", a.Stock),
			})
		}
		return WidgetData{"items": items}, nil
	})
}

func quickActionsProvider() Provider {
	return ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return WidgetData{
			"actions": []map[string]any{
				{"label": "Add Product", "route": "/products", "icon": "plus"},
			},
		}, nil
	})
}

func revenueAnalyticsProvider(renderer *ChartRenderer, revenue []MonthlyRevenue, colors []string) Provider {
	spec := ChartSpec{
		Type:   "line",
		XAxis:  monthLabels(revenue),
		Series: []ChartSeries{{Name: "Revenue", Points: revenuePoints(revenue)}},
		Colors: colors,
	}
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		html, err := renderer.Render(spec, meta.View.ChartTheme)
		if err != nil {
			return nil, err
		}
		summary, err := SummarizeRevenue(revenue)
		if err != nil {
			return nil, err
		}
		data := WidgetData{
			"title":      meta.Definition.Name,
			"chart_type": spec.Type,
			"chart_html": html,
			"total":      FormatCurrency(summary.Total),
			"mean":       FormatCurrency(summary.Mean),
			"best_month": summary.BestMonth,
			"best":       FormatCurrency(summary.Best),
			"growth":     FormatTrend(roundTenth(summary.Growth)),
			"date_input": meta.View.Param(DateParam),
		}
		picked, err := ParsePickedDate(meta.View.Param(DateParam))
		switch {
		case err != nil:
			data["date_error"] = "Could not read that date. Try a format like 2025-08-01."
		case !picked.IsZero():
			data["date_label"] = picked.Format(DateLayout)
			if value, ok := MonthRevenue(revenue, picked); ok {
				data["month_revenue"] = FormatCurrency(value)
				data["month"] = picked.Format("January")
			}
		}
		return data, nil
	})
}

func revenueTrendSpec(revenue []MonthlyRevenue, palette []string) ChartSpec {
	return ChartSpec{
		Type:   "line",
		XAxis:  monthLabels(revenue),
		Series: []ChartSeries{{Name: "Revenue", Points: revenuePoints(revenue)}},
		Colors: firstColor(palette),
		Smooth: true,
	}
}

func namedValueSpec(kind, series string, values []fixtures.NamedValue, colors []string) ChartSpec {
	points := make([]ChartPoint, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		points[i] = ChartPoint{Label: v.Name, Value: v.Value}
		labels[i] = v.Name
	}
	spec := ChartSpec{
		Type:   kind,
		Series: []ChartSeries{{Name: series, Points: points}},
		Colors: colors,
	}
	if kind != "pie" {
		spec.XAxis = labels
	}
	return spec
}

func revenueSeries(in []fixtures.MonthlyRevenue) []MonthlyRevenue {
	out := make([]MonthlyRevenue, len(in))
	for i, r := range in {
		out[i] = MonthlyRevenue{Month: r.Month, Revenue: r.Revenue}
	}
	return out
}

func monthLabels(revenue []MonthlyRevenue) []string {
	out := make([]string, len(revenue))
	for i, r := range revenue {
		out[i] = r.Month
	}
	return out
}

func revenuePoints(revenue []MonthlyRevenue) []ChartPoint {
	out := make([]ChartPoint, len(revenue))
	for i, r := range revenue {
		out[i] = ChartPoint{Label: r.Month, Value: r.Revenue}
	}
	return out
}

func firstColor(palette []string) []string {
	if len(palette) == 0 {
		return nil
	}
	return palette[:1]
}

func roundTenth(v float64) float64 {
	if v < 0 {
		return -roundTenth(-v)
	}
	return float64(int64(v*10+0.5)) / 10
}
