package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskmanager/internal/models"
	"taskmanager/internal/tasks"
)

// ConfirmDeleteData holds data for the delete confirmation page.
type ConfirmDeleteData struct {
	Page
	Task models.Task
}

// ListTasks returns the current tasks as JSON.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.tasks.Tasks()); err != nil {
		respondServerError(w, err)
	}
}

// CreateTask adds a task from the "text" form field. Blank text re-renders
// the task screen with a blocking alert.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	text := r.FormValue("text")
	if _, err := h.tasks.Add(ctx, text); err != nil {
		if errors.Is(err, models.ErrEmptyText) {
			h.renderHome(w, http.StatusBadRequest, text, alertInvalidTask)
			return
		}
		respondServerError(w, err)
		return
	}

	redirectHome(w, r)
}

// ToggleTask toggles the completion status of a task. Unknown ids are ignored.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	h.tasks.Toggle(r.Context(), taskID(r))
	redirectHome(w, r)
}

// ConfirmDeleteTask renders the confirmation prompt for deleting a task.
func (h *Handlers) ConfirmDeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.tasks.Get(taskID(r))
	if !ok {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	data := ConfirmDeleteData{
		Page: h.page("tasks"),
		Task: task,
	}

	h.render(w, http.StatusOK, "confirm_delete.html", data)
}

// DeleteTask deletes a task when the "confirm" form field is "yes". Any
// other answer cancels the deletion.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	confirmed := r.FormValue("confirm") == "yes"
	if _, err := h.tasks.Remove(ctx, taskID(r), tasks.Answer(confirmed)); err != nil {
		respondServerError(w, err)
		return
	}

	redirectHome(w, r)
}
