package helpers

import (
	"bytes"
	"io"
	"net/http"

	"confsite/internal/adapters/render"
)

// PageRenderer executes a named page template.
type PageRenderer interface {
	Render(w io.Writer, page string, data any) error
}

// RenderPage renders page into memory and only then writes the status line,
// so a template failure can still be answered with a 500.
func RenderPage(w http.ResponseWriter, renderer PageRenderer, status int, page string, data any) error {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, page, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderNotFound writes the 404 page, falling back to a plain-text body.
func RenderNotFound(w http.ResponseWriter, renderer PageRenderer) {
	if err := RenderPage(w, renderer, http.StatusNotFound, render.PageNotFound, render.Page{Title: "Not Found"}); err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
	}
}

// RedirectSeeOther sends a 303 so the browser follows up with a GET.
func RedirectSeeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// InternalError answers a failed HTML request.
func InternalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
