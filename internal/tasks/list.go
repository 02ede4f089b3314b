package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"taskmanager/internal/models"
	"taskmanager/internal/store"
)

// List is the in-memory ordered task list mirrored to a single key of a
// key-value store. Every mutation rewrites the whole list under that key.
//
// Persistence failures never fail a mutation: they are logged and kept in
// SaveErr so the presentation layer can warn about them, and the list keeps
// working on its in-memory state.
type List struct {
	kv     store.Store
	key    string
	logger *slog.Logger
	ids    *models.IDGenerator

	mu      sync.Mutex
	tasks   []models.Task
	loadErr error
	saveErr error
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger persistence failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) { l.logger = logger }
}

// WithClock sets the clock ids are derived from.
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.ids = models.NewIDGenerator(now) }
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(l *List) { l.key = key }
}

// NewList creates an empty list backed by kv. Call Load to read persisted tasks.
func NewList(kv store.Store, opts ...Option) *List {
	l := &List{
		kv:     kv,
		key:    StorageKey,
		logger: slog.Default(),
		ids:    models.NewIDGenerator(nil),
		tasks:  []models.Task{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the in-memory list with the persisted one. A missing key
// yields an empty list. On any failure the list is left empty and the error
// is returned; a blob that cannot be decoded yields an error wrapping
// ErrCorruptBlob.
func (l *List) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tasks = []models.Task{}
	l.loadErr = l.load(ctx)
	return l.loadErr
}

func (l *List) load(ctx context.Context) error {
	data, err := l.kv.Get(ctx, l.key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		l.logger.Error("failed to load tasks", "key", l.key, "error", err)
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	list, err := Decode(data)
	if err != nil {
		l.logger.Error("failed to decode tasks", "key", l.key, "error", err)
		return err
	}

	for _, t := range list {
		l.ids.Observe(t.ID)
	}
	l.tasks = list
	l.logger.Debug("tasks loaded", "count", len(list))
	return nil
}

// Tasks returns a copy of the current list in insertion order.
func (l *List) Tasks() []models.Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Len returns the number of tasks.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Get returns the task with the given id.
func (l *List) Get(id string) (models.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(id); i >= 0 {
		return l.tasks[i], true
	}
	return models.Task{}, false
}

// Add appends a new, not completed task. Blank text is rejected with
// models.ErrEmptyText and leaves the list untouched.
func (l *List) Add(ctx context.Context, text string) (models.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return models.Task{}, models.ErrEmptyText
	}
	task := models.Task{ID: l.ids.Next(), Text: text}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	updated := make([]models.Task, len(l.tasks), len(l.tasks)+1)
	copy(updated, l.tasks)
	l.tasks = append(updated, task)
	l.save(ctx)

	return task, nil
}

// Toggle flips the completed flag of the task with the given id and reports
// whether it was found. An unknown id leaves the list unchanged.
func (l *List) Toggle(ctx context.Context, id string) (models.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated := make([]models.Task, len(l.tasks))
	copy(updated, l.tasks)

	var (
		task  models.Task
		found bool
	)
	if i := indexOf(updated, id); i >= 0 {
		updated[i].Completed = !updated[i].Completed
		task, found = updated[i], true
	}

	l.tasks = updated
	l.save(ctx)
	return task, found
}

// Remove deletes the task with the given id once confirm agrees. It reports
// whether the task was removed. An unknown id returns false without asking.
// A declined confirmation or a confirmer error leaves the list unchanged.
func (l *List) Remove(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	task, ok := l.Get(id)
	if !ok {
		return false, nil
	}

	// The confirmer may block on the user, so it runs without the lock.
	yes, err := confirm.Confirm(ctx, task)
	if err != nil {
		return false, fmt.Errorf("failed to confirm removal: %w", err)
	}
	if !yes {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return false, nil
	}

	updated := make([]models.Task, 0, len(l.tasks)-1)
	updated = append(updated, l.tasks[:i]...)
	updated = append(updated, l.tasks[i+1:]...)
	l.tasks = updated
	l.save(ctx)

	return true, nil
}

// SaveErr returns the error of the last write, or nil if it succeeded.
func (l *List) SaveErr() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveErr
}

// LoadErr returns the error from the last Load. It is cleared once a write
// succeeds, since the persisted value then reflects the in-memory list.
func (l *List) LoadErr() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadErr
}

// save writes the whole list. Callers hold mu.
func (l *List) save(ctx context.Context) {
	data, err := Encode(l.tasks)
	if err == nil {
		err = l.kv.Set(ctx, l.key, data)
	}
	if err != nil {
		l.logger.Error("failed to save tasks", "key", l.key, "error", err)
		l.saveErr = err
		return
	}
	l.saveErr = nil
	l.loadErr = nil
}

func (l *List) indexOf(id string) int {
	return indexOf(l.tasks, id)
}

func indexOf(list []models.Task, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
