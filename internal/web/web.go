// Package web renders the server-side HTML pages.
//
// Templates are embedded in the binary and rendered through echo's Renderer
// interface, so handlers call c.Render(status, "cars", page).
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlaceholderImage is shown for cars without an image.
const PlaceholderImage = "https://via.placeholder.com/150"

//go:embed templates/*.html
var templatesFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageCars   = "cars"
	PageEdit   = "edit"
	PageDelete = "delete"
	PageSignup = "signup"
)

var pages = []string{PageCars, PageEdit, PageDelete, PageSignup}

// Renderer implements echo.Renderer over the embedded templates. Every page
// is parsed together with the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"label":    Label,
		"imageOr":  imageOr,
		"currency": currency,
		"pathID":   url.PathEscape,
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		r.templates[page] = tmpl
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

var titleCaser = cases.Title(language.English)

// Label humanizes a form field name: "fuel_type" -> "Fuel Type".
func Label(field string) string {
	return titleCaser.String(strings.ReplaceAll(field, "_", " "))
}

func imageOr(image string) string {
	if strings.TrimSpace(image) == "" {
		return PlaceholderImage
	}
	return image
}

func currency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// CurrentYear is the default for the year field of a new car.
func CurrentYear() int {
	return time.Now().Year()
}
