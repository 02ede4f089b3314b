package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SettingsData holds data for the settings screen template.
type SettingsData struct {
	Page
	Notice string
}

// Settings renders the settings screen.
func (h *Handlers) Settings(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "settings.html", SettingsData{Page: h.page("settings")})
}

// SettingsAction handles a settings button. None of them are functional yet,
// so each one re-renders the screen with a notice saying so.
func (h *Handlers) SettingsAction(w http.ResponseWriter, r *http.Request) {
	action, ok := h.info.Action(chi.URLParam(r, "action"))
	if !ok {
		respondError(w, http.StatusNotFound, "unknown settings action")
		return
	}

	data := SettingsData{
		Page:   h.page("settings"),
		Notice: action.Notice(),
	}

	h.render(w, http.StatusOK, "settings.html", data)
}
