package shell

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Breadcrumb is one entry of the trail. The Current entry is rendered as
// plain text; every other entry links to Href.
type Breadcrumb struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

// DeriveBreadcrumbs builds the trail for path: "Home" first, then one entry
// per non-empty segment with its first character upper-cased and a link to
// the cumulative path. The last entry is current.
func DeriveBreadcrumbs(path string) []Breadcrumb {
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	trail := make([]Breadcrumb, 0, len(segments)+1)
	trail = append(trail, Breadcrumb{Label: "Home", Href: "/", Current: len(segments) == 0})
	href := ""
	for i, seg := range segments {
		href += "/" + seg
		trail = append(trail, Breadcrumb{
			Label:   upperFirst(seg),
			Href:    href,
			Current: i == len(segments)-1,
		})
	}
	return trail
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
