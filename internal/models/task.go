package models

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyText is returned when a task has no text after trimming whitespace.
var ErrEmptyText = errors.New("text is required")

// Task represents a single to-do item.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}

	if t.ID == "" {
		return errors.New("id is required")
	}

	return nil
}

// Status returns a short human label for the completion state.
func (t *Task) Status() string {
	if t.Completed {
		return "done"
	}
	return "open"
}

// IDGenerator issues task ids from the creation time in Unix milliseconds.
// Ids are strictly increasing: when the clock has not advanced past the last
// issued id, the last id plus one is used instead.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

// NewIDGenerator creates an IDGenerator. A nil clock defaults to time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Observe records an existing id so later ids are issued after it.
// Ids that are not numeric are ignored.
func (g *IDGenerator) Observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	if n > g.last {
		g.last = n
	}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() string {
	n := g.now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return strconv.FormatInt(n, 10)
}
