package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sort"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/apostaesportiva/bolao/internal/api/cookie"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS serves the bundled stylesheet and placeholder avatar.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var pages = []string{"login", "signup", "forgot", "reset", "dashboard", "profile"}

// Renderer executes the page templates, each wrapped in the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

type pointsRow struct {
	Key    string
	Points float64
}

// pageData is the view model shared by every page.
type pageData struct {
	Lang     language.Tag
	TitleKey string
	Theme    string
	Notice   *cookie.Notice
	User     *domain.CachedUser

	Errors map[string]string
	Form   map[string]string

	Account       *domain.Account
	Pool          *domain.User
	Points        []pointsRow
	PhotoURL      string
	Token         string
	GoogleEnabled bool
}

// T prints a localized message; templates call {{.T "key"}}.
func (p pageData) T(key string, args ...any) string {
	return i18n.T(p.Lang, key, args...)
}

func (p pageData) Title() string {
	return p.T(p.TitleKey)
}

func (p pageData) LangCode() string {
	return p.Lang.String()
}

func sortedPoints(points map[string]float64) []pointsRow {
	rows := make([]pointsRow, 0, len(points))
	for k, v := range points {
		rows = append(rows, pointsRow{Key: k, Points: v})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}
