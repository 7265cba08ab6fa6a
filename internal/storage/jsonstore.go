package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSON serializes doc with two-space indentation and replaces the file at
// path atomically: the document is written to a sibling temp file first and
// renamed onto the final path, so a reader never observes a partially written
// file, even if the process dies mid-write.
func WriteJSON(path string, doc interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}

	return nil
}

// ReadJSON decodes the file at path into out and reports whether the stored
// document was used. A missing file or unparsable content leaves out untouched
// and returns false; the caller's pre-initialized value serves as the default.
// These documents are best-effort local caches, so a failed read is never an
// error.
func ReadJSON(path string, out interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// Remove deletes the file at path and reports whether a file was actually
// removed.
func Remove(path string) bool {
	return os.Remove(path) == nil
}
