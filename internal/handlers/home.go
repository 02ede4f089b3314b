package handlers

import (
	"fmt"
	"net/http"

	"taskmanager/internal/models"
)

// Messages shown by the task screen.
const (
	alertInvalidTask = "Please enter a valid task."
	warnLoadFailed   = "Saved tasks could not be loaded: %v"
	warnSaveFailed   = "Your latest changes could not be saved: %v"
)

// HomeData holds data for the task screen template.
type HomeData struct {
	Page
	Tasks   []models.Task
	Draft   string
	Alert   string
	Warning string
}

// Home renders the task screen.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, http.StatusOK, "", "")
}

func (h *Handlers) renderHome(w http.ResponseWriter, code int, draft, alert string) {
	data := HomeData{
		Page:    h.page("tasks"),
		Tasks:   h.tasks.Tasks(),
		Draft:   draft,
		Alert:   alert,
		Warning: h.warning(),
	}

	h.render(w, code, "tasks.html", data)
}

// warning describes a persistence problem, if any. A failed write is more
// recent than a failed startup load, so it wins. A load failure is no longer
// reported once a write has replaced the stored tasks.
func (h *Handlers) warning() string {
	if err := h.tasks.SaveErr(); err != nil {
		return fmt.Sprintf(warnSaveFailed, err)
	}
	if err := h.tasks.LoadErr(); err != nil {
		return fmt.Sprintf(warnLoadFailed, err)
	}
	return ""
}
