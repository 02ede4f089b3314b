package tasks

import (
	"context"

	"taskmanager/internal/models"
)

// Confirmer asks the user whether a task should really be deleted.
type Confirmer interface {
	Confirm(ctx context.Context, task models.Task) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, task models.Task) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, task models.Task) (bool, error) {
	return f(ctx, task)
}

// Answer returns a Confirmer that always gives the same answer. Presentation
// layers that collect the answer before calling Remove use it.
func Answer(yes bool) Confirmer {
	return ConfirmFunc(func(context.Context, models.Task) (bool, error) {
		return yes, nil
	})
}
