package tasks

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/taskflow/internal/model"
)

const defaultMimeType = "application/octet-stream"

// AttachmentFromPath describes the regular file at path. The file is only
// inspected, never read or copied.
func AttachmentFromPath(path string) (model.Attachment, error) {
	abs, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return model.Attachment{}, fmt.Errorf("resolving attachment %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("reading attachment %s: %w", path, err)
	}
	if info.IsDir() {
		return model.Attachment{}, fmt.Errorf("attachment %s is a directory", path)
	}

	return model.Attachment{
		ID:        uuid.NewString(),
		Name:      info.Name(),
		MimeType:  mimeTypeOf(abs),
		SizeBytes: info.Size(),
		Path:      abs,
	}, nil
}

// AttachmentsFromPaths resolves a list of paths, stopping at the first
// failure. Blank entries are ignored.
func AttachmentsFromPaths(paths []string) ([]model.Attachment, error) {
	var out []model.Attachment
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		a, err := AttachmentFromPath(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if len(out) > model.MaxAttachments {
		return nil, fmt.Errorf("%w: %d given, at most %d", ErrTooManyAttachments, len(out), model.MaxAttachments)
	}
	return out, nil
}

func mimeTypeOf(path string) string {
	t := mime.TypeByExtension(filepath.Ext(path))
	if t == "" {
		return defaultMimeType
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}

// normalizeAttachments copies in and fills missing ids and names.
func normalizeAttachments(in []model.Attachment) []model.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.Attachment, len(in))
	copy(out, in)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if out[i].Name == "" && out[i].Path != "" {
			out[i].Name = filepath.Base(out[i].Path)
		}
		if out[i].MimeType == "" {
			out[i].MimeType = defaultMimeType
		}
	}
	return out
}
