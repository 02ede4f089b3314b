package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"taskmanager/internal/models"
)

// StorageKey is the key the task list is persisted under.
const StorageKey = "@tasks"

// SchemaVersion is the version written into every encoded blob.
const SchemaVersion = 1

// ErrCorruptBlob is returned when a persisted blob cannot be decoded into a
// valid task list.
var ErrCorruptBlob = errors.New("corrupt task blob")

type envelope struct {
	Version int           `json:"version"`
	Tasks   []models.Task `json:"tasks"`
}

// Encode serializes the task list into a versioned blob.
func Encode(list []models.Task) ([]byte, error) {
	if list == nil {
		list = []models.Task{}
	}
	data, err := json.Marshal(envelope{Version: SchemaVersion, Tasks: list})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode. A bare JSON array of tasks, as
// written before blobs were versioned, is accepted as well.
func Decode(data []byte) ([]models.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrCorruptBlob)
	}

	var list []models.Task
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
		}
		if env.Version != SchemaVersion {
			return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptBlob, env.Version)
		}
		list = env.Tasks
	default:
		return nil, fmt.Errorf("%w: unexpected leading byte %q", ErrCorruptBlob, trimmed[0])
	}

	seen := make(map[string]struct{}, len(list))
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrCorruptBlob, i, err)
		}
		if _, dup := seen[list[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrCorruptBlob, list[i].ID)
		}
		seen[list[i].ID] = struct{}{}
	}

	if list == nil {
		list = []models.Task{}
	}
	return list, nil
}
