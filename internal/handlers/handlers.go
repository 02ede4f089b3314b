package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskmanager/internal/models"
	"taskmanager/internal/tasks"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	tasks     *tasks.List
	info      models.AppInfo
	templates *template.Template
}

// New creates a new Handlers instance.
func New(list *tasks.List, info models.AppInfo, tmpl *template.Template) *Handlers {
	return &Handlers{
		tasks:     list,
		info:      info,
		templates: tmpl,
	}
}

// Page holds the data shared by every full page template.
type Page struct {
	Title string
	Tab   string // "tasks" or "settings"
	App   models.AppInfo
}

func (h *Handlers) page(tab string) Page {
	return Page{Title: h.info.Name, Tab: tab, App: h.info}
}

// taskID extracts the task id from URL parameters.
func taskID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func respondServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// redirectHome sends the browser back to the task screen after a form post.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) render(w http.ResponseWriter, code int, name string, data interface{}) {
	if h.templates == nil {
		// For testing without templates
		w.WriteHeader(code)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}
