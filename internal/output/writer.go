package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// WriteJSON writes records to path as an indented JSON array. Non-ASCII
// text is written as UTF-8, not escaped. An existing file is replaced.
func WriteJSON(path string, records []domain.ParagraphRecord) error {
	staged, err := StageJSON(path, records)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// StagedJSON is an encoded output file waiting next to its destination.
// Nothing is visible at the destination until Commit.
type StagedJSON struct {
	path    string
	tmpPath string
}

// StageJSON encodes records into a temporary file in the directory of path
func StageJSON(path string, records []domain.ParagraphRecord) (*StagedJSON, error) {
	if records == nil {
		records = []domain.ParagraphRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, domain.NewIOError(path, "failed to encode records", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, domain.NewIOError(path, "failed to create output file", err)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, domain.NewIOError(path, "failed to write output file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, domain.NewIOError(path, "failed to write output file", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return nil, domain.NewIOError(path, "failed to set output file permissions", err)
	}

	return &StagedJSON{path: path, tmpPath: tmp.Name()}, nil
}

// Path returns the destination path
func (s *StagedJSON) Path() string {
	return s.path
}

// Commit renames the staged file into place
func (s *StagedJSON) Commit() error {
	if err := os.Rename(s.tmpPath, s.path); err != nil {
		os.Remove(s.tmpPath)
		return domain.NewIOError(s.path, "failed to replace output file", err)
	}
	return nil
}

// Discard removes the staged file; the destination is left untouched
func (s *StagedJSON) Discard() {
	os.Remove(s.tmpPath)
}

// ReadJSON reads records previously written by WriteJSON
func ReadJSON(path string) ([]domain.ParagraphRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewIOError(path, "failed to read output file", err)
	}

	var records []domain.ParagraphRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, domain.NewIOError(path, "failed to decode output file", err)
	}
	return records, nil
}
