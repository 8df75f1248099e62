package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/montanaflynn/stats"
)

// DateLayout is how a picked date is echoed back to the user.
const DateLayout = "January 2, 2006"

// MonthlyRevenue is one point of the revenue series.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// RevenueSummary aggregates a revenue series.
type RevenueSummary struct {
	Total     float64 `json:"total"`
	Mean      float64 `json:"mean"`
	BestMonth string  `json:"best_month"`
	Best      float64 `json:"best"`
	// Growth is the first-to-last change in percent.
	Growth float64 `json:"growth"`
}

// SummarizeRevenue computes totals over the series. An empty series yields
// a zero summary.
func SummarizeRevenue(series []MonthlyRevenue) (RevenueSummary, error) {
	if len(series) == 0 {
		return RevenueSummary{}, nil
	}
	data := make(stats.Float64Data, len(series))
	for i, point := range series {
		data[i] = point.Revenue
	}
	total, err := stats.Sum(data)
	if err != nil {
		return RevenueSummary{}, fmt.Errorf("dashboard: revenue total: %w", err)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return RevenueSummary{}, fmt.Errorf("dashboard: revenue mean: %w", err)
	}
	best, err := stats.Max(data)
	if err != nil {
		return RevenueSummary{}, fmt.Errorf("dashboard: revenue max: %w", err)
	}
	summary := RevenueSummary{Total: total, Mean: mean, Best: best}
	for _, point := range series {
		if point.Revenue == best {
			summary.BestMonth = point.Month
			break
		}
	}
	if first := series[0].Revenue; first != 0 {
		summary.Growth = (series[len(series)-1].Revenue - first) / first * 100
	}
	return summary, nil
}

// ErrInvalidDate is returned when a picked date cannot be parsed.
var ErrInvalidDate = errors.New("dashboard: unrecognized date")

// ParsePickedDate leniently parses a free-form date such as "2025-08-01",
// "Aug 1, 2025" or "08/01/2025". Blank input returns the zero time.
func ParsePickedDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// MonthRevenue returns the revenue recorded for t's month, matched on the
// three-letter month label.
func MonthRevenue(series []MonthlyRevenue, t time.Time) (float64, bool) {
	if t.IsZero() {
		return 0, false
	}
	label := t.Format("Jan")
	for _, point := range series {
		if strings.EqualFold(point.Month, label) {
			return point.Revenue, true
		}
	}
	return 0, false
}
