package sarif

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrDecode is returned when a document cannot be parsed as SARIF JSON.
var ErrDecode = errors.New("decode SARIF")

// Reader is the file access needed by ReadFile.
type Reader interface {
	ReadText(ctx context.Context, path string) (string, error)
}

// Decode parses a SARIF document from r.
func Decode(r io.Reader) (*Log, error) {
	var doc Log

	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return &doc, nil
}

// DecodeBytes parses a SARIF document held in memory.
func DecodeBytes(data []byte) (*Log, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile reads and decodes the SARIF document at path.
func ReadFile(ctx context.Context, fs Reader, path string) (*Log, error) {
	text, err := fs.ReadText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read SARIF file %s: %w", path, err)
	}

	doc, err := DecodeBytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}
