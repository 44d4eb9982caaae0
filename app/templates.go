package main

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/marrowstone/inkpress/internal/blogservice"
	"github.com/marrowstone/inkpress/internal/userservice"
)

//go:embed templates
var pageFS embed.FS

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"publishedDate": func(b blogservice.Blog) string {
		return b.PublishedDate()
	},
	"inc": func(n int) int { return n + 1 },
	"dec": func(n int) int { return n - 1 },
}

type templateData struct {
	CurrentUser   *userservice.User
	Author        *userservice.User
	Blog          *blogservice.Blog
	Blogs         []blogservice.Blog
	BlogPage      *blogservice.BlogPage
	Filters       blogservice.Filters
	PublishedDate string
	Date          time.Time
	Status        int
	Message       string
}

// newTemplateCache parses every page template against the base layout once at
// startup.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(pageFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFS(pageFS, "templates/base.html", page)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}

// render writes a page through a buffer so a template failure never leaves a
// half-written body behind a 200 status.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	ts, ok := app.templates[page]
	if !ok {
		app.logError(r, &templateNotFoundError{page: page})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &templateData{}
	}
	if data.CurrentUser == nil {
		data.CurrentUser = app.getUserContext(r)
	}
	data.Date = time.Now()

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.logError(r, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type templateNotFoundError struct {
	page string
}

func (e *templateNotFoundError) Error() string {
	return "template not found: " + e.page
}
