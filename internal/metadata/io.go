package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	oerrors "github.com/idsr/indgen/internal/errors"
)

// Load reads and parses the metadata snapshot at path.
// The whole document must parse; there are no partial loads.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerrors.NewIOError(path, err)
	}

	md, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, oerrors.NewParseError(path, err)
	}
	return md, nil
}

// Decode parses a metadata snapshot from r.
func Decode(r io.Reader) (*Metadata, error) {
	var md Metadata
	dec := json.NewDecoder(r)
	if err := dec.Decode(&md); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after metadata document")
	}
	return &md, nil
}

// Encode renders doc as indented JSON followed by a newline.
func Encode(doc Document) ([]byte, error) {
	if doc.ProgramIndicators == nil {
		doc.ProgramIndicators = make([]Indicator, 0)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadDocument reads a previously written output document.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerrors.NewIOError(path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, oerrors.NewParseError(path, err)
	}
	return &doc, nil
}

// WriteFile persists doc at path in a single replace: the document is
// written to a temporary file in the same directory and renamed over any
// existing file.
func WriteFile(path string, doc Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return oerrors.NewIOError(path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return oerrors.NewIOError(path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return oerrors.NewIOError(path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return oerrors.NewIOError(path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return oerrors.NewIOError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return oerrors.NewIOError(path, err)
	}
	return nil
}
