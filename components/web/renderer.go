package web

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	template "github.com/goliatone/go-template"
)

const templateExt = ".html"

//go:embed templates/*.html templates/widgets/*.html
var embeddedTemplates embed.FS

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// TemplateOption customizes NewTemplateRenderer.
type TemplateOption func(*templateSource)

type templateSource struct {
	fsys    fs.FS
	baseDir string
}

// WithTemplateDir loads templates from dir on disk. The directory must mirror
// the embedded layout: page templates at the top, widget partials under
// widgets/. An empty dir keeps the embedded set.
func WithTemplateDir(dir string) TemplateOption {
	return func(src *templateSource) {
		if strings.TrimSpace(dir) == "" {
			return
		}
		dir = filepath.Clean(dir)
		src.fsys = os.DirFS(filepath.Dir(dir))
		src.baseDir = filepath.Base(dir)
	}
}

// NewTemplateRenderer creates a go-template renderer over the embedded
// templates, or over a directory set with WithTemplateDir.
func NewTemplateRenderer(opts ...TemplateOption) (Renderer, error) {
	src := templateSource{fsys: embeddedTemplates, baseDir: "templates"}
	for _, opt := range opts {
		opt(&src)
	}
	if _, err := fs.Stat(src.fsys, path.Join(src.baseDir, "layout"+templateExt)); err != nil {
		return nil, fmt.Errorf("web: template set has no layout: %w", err)
	}
	return template.NewRenderer(
		template.WithFS(src.fsys),
		template.WithBaseDir(src.baseDir),
		template.WithExtension(templateExt),
	)
}

// TemplateNames lists the embedded template names as passed to Render,
// e.g. "products" or "widgets/metrics".
func TemplateNames() ([]string, error) {
	var names []string
	err := fs.WalkDir(embeddedTemplates, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != templateExt {
			return err
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), templateExt))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("web: list templates: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
