package store

import (
	"context"
)

// KV is a string key-value store. It backs the task collection and the
// small set of persisted UI preferences.
type KV interface {
	// Get returns the value stored under key. The bool is false when the
	// key is absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Fixed keys used by taskflow.
const (
	KeyTasks = "tasks"
	KeyTheme = "theme"
)
