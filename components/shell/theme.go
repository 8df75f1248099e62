package shell

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Theme is the process-wide colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("shell: unknown theme %q", value)
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeStore holds the current theme for the whole session.
type ThemeStore interface {
	Theme() Theme
	SetTheme(Theme)
	Toggle(ctx context.Context) Theme
}

// Telemetry records shell events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// MemoryThemeStore is the in-process ThemeStore. It is safe for concurrent use.
type MemoryThemeStore struct {
	mu        sync.RWMutex
	theme     Theme
	telemetry Telemetry
}

// NewThemeStore starts at initial; anything but dark means light.
func NewThemeStore(initial Theme, telemetry Telemetry) *MemoryThemeStore {
	if initial != ThemeDark {
		initial = ThemeLight
	}
	if telemetry == nil {
		telemetry = noopTelemetry{}
	}
	return &MemoryThemeStore{theme: initial, telemetry: telemetry}
}

func (s *MemoryThemeStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *MemoryThemeStore) SetTheme(theme Theme) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

// Toggle flips the theme and returns the new value.
func (s *MemoryThemeStore) Toggle(ctx context.Context) Theme {
	s.mu.Lock()
	s.theme = s.theme.Opposite()
	next := s.theme
	s.mu.Unlock()
	s.telemetry.Record(ctx, "shell.theme.toggle", map[string]any{"theme": string(next)})
	return next
}

// ThemeSelection carries everything the layout needs to paint a theme.
type ThemeSelection struct {
	Name       Theme
	RootClass  string
	Tokens     map[string]string
	ChartTheme string
}

var themeTokens = map[Theme]map[string]string{
	ThemeLight: {
		"background":       "0 0% 100%",
		"foreground":       "240 10% 3.9%",
		"card":             "0 0% 100%",
		"muted":            "240 4.8% 95.9%",
		"muted-foreground": "240 3.8% 46.1%",
		"primary":          "262 83% 58%",
		"destructive":      "0 84.2% 60.2%",
		"border":           "240 5.9% 90%",
	},
	ThemeDark: {
		"background":       "240 10% 3.9%",
		"foreground":       "0 0% 98%",
		"card":             "240 10% 6%",
		"muted":            "240 3.7% 15.9%",
		"muted-foreground": "240 5% 64.9%",
		"primary":          "263 70% 65%",
		"destructive":      "0 62.8% 30.6%",
		"border":           "240 3.7% 15.9%",
	},
}

// Select resolves the presentation details of a theme.
func Select(theme Theme) *ThemeSelection {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	selection := &ThemeSelection{
		Name:       theme,
		ChartTheme: types.ThemeWesteros,
		Tokens:     make(map[string]string, len(themeTokens[theme])),
	}
	if theme == ThemeDark {
		selection.RootClass = "dark"
		selection.ChartTheme = types.ThemeChalk
	}
	for key, value := range themeTokens[theme] {
		selection.Tokens[key] = value
	}
	return selection
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string with
// keys in sorted order.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
