// Package manifest writes the export manifest: the JSON document handed
// to the external exporter describing what a generation call produced,
// per spec's external-interfaces section.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FloorEntry is one floor's row in the manifest's floors array.
type FloorEntry struct {
	Index            int `json:"index"`
	RoomCount        int `json:"room_count"`
	WallSegmentCount int `json:"wall_segment_count"`
}

// Document is the manifest's on-disk JSON shape, field-for-field as
// described by the spec: building, floors, roof, format, created_at.
type Document struct {
	Building  string       `json:"building"`
	Floors    []FloorEntry `json:"floors"`
	Roof      string       `json:"roof"`
	Format    string       `json:"format"`
	CreatedAt string       `json:"created_at"`
}

// New builds a Document stamped with the current UTC time in RFC3339,
// the wire format the spec's created_at field requires.
func New(building string, floors []FloorEntry, roof, format string) Document {
	return Document{
		Building:  building,
		Floors:    floors,
		Roof:      roof,
		Format:    format,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Write marshals doc as indented JSON and writes it to path, creating
// any missing parent directories.
func Write(path string, doc Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("manifest: mkdir %s: %w", dir, err)
		}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}
