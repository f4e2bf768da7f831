// Package render renders the site's HTML pages from embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageIndex       = "index.html"
	PageLogin       = "login.html"
	PageAdmin       = "admin.html"
	PageEditSpeaker = "edit_speaker.html"
	PageNotFound    = "not_found.html"
)

var pages = []string{PageIndex, PageLogin, PageAdmin, PageEditSpeaker, PageNotFound}

// Renderer executes a page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page. uploadsURL is the public path under which locally stored images are served.
func New(uploadsURL string) (*Renderer, error) {
	funcs := template.FuncMap{
		"imageURL": ImageURL(uploadsURL),
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page executed with data. Output is buffered so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// ImageURL returns a func resolving an image reference to a URL.
// Absolute http(s) references from the remote store and site paths such as DefaultSpeakerImage
// pass through; anything else is a local filename.
func ImageURL(uploadsURL string) func(ref string) string {
	base := strings.TrimRight(uploadsURL, "/")
	return func(ref string) string {
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "/") {
			return ref
		}
		return base + "/" + url.PathEscape(ref)
	}
}
