// Package export writes the task collection to portable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/tasks"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat converts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or toml)", s)
	}
}

// Document is the exported payload.
type Document struct {
	ExportedAt time.Time    `json:"exportedAt" toml:"exported_at"`
	Stats      tasks.Stats  `json:"stats" toml:"stats"`
	Tasks      []model.Task `json:"tasks" toml:"tasks"`
}

// NewDocument snapshots all at time now.
func NewDocument(all []model.Task, now time.Time) Document {
	if all == nil {
		all = []model.Task{}
	}
	return Document{
		ExportedAt: now.UTC(),
		Stats:      tasks.ComputeStats(all, now),
		Tasks:      all,
	}
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json export: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encoding toml export: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	return nil
}
