package dashboard

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators, e.g. "1,284".
func FormatCount(v float64) string {
	return numberPrinter.Sprintf("%d", int64(math.Round(v)))
}

// FormatCurrency renders whole dollars, e.g. "$86,400".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-" + FormatCurrency(-v)
	}
	return "$" + FormatCount(v)
}

// FormatMoney renders dollars and cents with separators, e.g. "$1,290.45".
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	cents := int64(math.Round(v * 100))
	return "$" + numberPrinter.Sprintf("%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}

// FormatTrend renders a percentage change with its sign, e.g. "+12%",
// "-1.2%" or "0%".
func FormatTrend(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', -1, 64) + "%"
	if pct > 0 {
		return "+" + s
	}
	return s
}
