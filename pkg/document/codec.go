// Package document loads, walks and saves the YAML documents of a corpus.
//
// Documents are kept as yaml.Node trees rather than decoded into maps so that
// key order, comments and scalar styles survive a load/save round trip.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-rekey/pkg/apperrors"
)

// DefaultExtensions are the file extensions treated as documents.
var DefaultExtensions = []string{".yaml", ".yml"}

// Load reads and parses the document at path.
// Syntax errors are wrapped with apperrors.ErrParse; read errors are returned as is.
func Load(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses a single YAML document.
// An empty input yields an empty document node. A stream holding more than one
// document is rejected.
func Decode(data []byte) (*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &yaml.Node{Kind: yaml.DocumentNode}, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
		}
		return nil, fmt.Errorf("%w: expected a single document", apperrors.ErrParse)
	}

	return &doc, nil
}

// Encode serializes doc with two-space indentation.
func Encode(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes doc back to path, keeping the permissions of an existing file.
func Save(path string, doc *yaml.Node) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// IsEmpty returns true if doc holds no content.
func IsEmpty(doc *yaml.Node) bool {
	if doc == nil {
		return true
	}
	return doc.Kind == yaml.DocumentNode && len(doc.Content) == 0
}

// IsDocumentFile reports whether name has one of the given extensions.
// Extensions are compared case-sensitively and must include the leading dot.
func IsDocumentFile(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.TrimSpace(e) == ext {
			return true
		}
	}
	return false
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
