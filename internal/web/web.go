// Package web renders pages either as HTML or, for requests with a .json
// suffix, as the page state wrapped in the API response envelope.
package web

import (
	"bookmyslot/internal/lib/api/response"
	"bookmyslot/internal/lib/logger/sl"
	"bookmyslot/internal/tz"
	"bookmyslot/internal/views"
	"bytes"
	"embed"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageHome     = "home"
	PageDetail   = "detail"
	PageCreate   = "create"
	PageBookings = "bookings"
	PageError    = "error"
)

var pageNames = []string{PageHome, PageDetail, PageCreate, PageBookings, PageError}

// Page is what every template receives.
type Page struct {
	Template string          `json:"-"`
	Title    string          `json:"title"`
	Nav      []views.NavItem `json:"-"`
	Timezone string          `json:"timezone"`
	Abbr     string          `json:"timezone_abbr"`
	Data     any             `json:"data"`
}

func NewPage(r *http.Request, tmpl, title string, conv *tz.Converter, data any) Page {
	return Page{
		Template: tmpl,
		Title:    title,
		Nav:      views.Nav(r.URL.Path),
		Timezone: conv.Timezone(),
		Abbr:     conv.Abbreviation(),
		Data:     data,
	}
}

type PageResponse struct {
	response.Response
	Page Page `json:"page"`
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	const op = "web.NewRenderer"

	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		t, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages}, nil
}

func MustNewRenderer() *Renderer {
	rd, err := NewRenderer()
	if err != nil {
		panic(err)
	}

	return rd
}

// Respond writes page with the given status.
func (rd *Renderer) Respond(w http.ResponseWriter, r *http.Request, status int, page Page) error {
	const op = "web.Renderer.Respond"

	if format, _ := r.Context().Value(middleware.URLFormatCtxKey).(string); format == "json" {
		resp := response.OK()
		if status >= http.StatusBadRequest {
			resp = response.Error(http.StatusText(status))
		}

		render.Status(r, status)
		render.JSON(w, r, PageResponse{Response: resp, Page: page})

		return nil
	}

	t, ok := rd.pages[page.Template]
	if !ok {
		return fmt.Errorf("%s: unknown template %q", op, page.Template)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	render.Status(r, status)
	render.HTML(w, r, buf.String())

	return nil
}

// Render is Respond for handlers: a failure is logged and answered with a
// bare 500.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, page Page) {
	if err := rd.Respond(w, r, status, page); err != nil {
		log.Error("failed to render page", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
