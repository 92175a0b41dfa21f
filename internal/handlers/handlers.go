// Package handlers serves the catalog pages, HTMX fragments and the costing
// API.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"bakery/internal/catalog"
	applog "bakery/internal/log"
	"bakery/internal/views/layout"
	"bakery/internal/views/pages"
)

const sessionFlashKey = "flash"

var (
	sessionManager *scs.SessionManager
	store          *catalog.Store
)

// ErrNoStore is returned when a handler runs before Configure.
var ErrNoStore = errors.New("handlers: catalog store is not configured")

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, s *catalog.Store) {
	sessionManager = sm
	store = s
}

func catalogStore() (*catalog.Store, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	return store, nil
}

func setFlash(ctx context.Context, message string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(ctx, sessionFlashKey, message)
}

func popFlash(ctx context.Context) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(ctx, sessionFlashKey)
}

func renderComponent(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		applog.Debug(r.Context(), "failed to write response", "error", err)
	}
}

// renderPage renders content on its own for HTMX swaps and inside the layout
// otherwise.
func renderPage(w http.ResponseWriter, r *http.Request, status int, title, section string, content templ.Component) {
	if wantsFragment(r) {
		renderComponent(w, r, status, content)
		return
	}
	renderComponent(w, r, status, layout.Layout(title, section, popFlash(r.Context()), content))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusOf maps store errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrMainVariationInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	applog.Debug(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

// uintParam reads a numeric route parameter.
func uintParam(r *http.Request, name string) (uint, error) {
	id, ok := pages.ParseUint(chi.URLParam(r, name))
	if !ok {
		return 0, catalog.ErrNotFound
	}
	return id, nil
}

// Home sends visitors to the product list.
func Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}
