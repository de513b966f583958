package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var (
	ErrDatasetMissing   = errors.New("dataset file not found")
	ErrDatasetMalformed = errors.New("malformed dataset")
)

var requiredKeys = []string{"name", "city", "status"}

// Row is one dataset entry after string coercion; values are not trimmed yet.
type Row struct {
	Name   string
	City   string
	Status string
}

// LoadFile reads the dataset at path and runs the structural pass.
func LoadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: could not find %s", ErrDatasetMissing, path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a JSON array of {name, city, status} objects. Any structural
// problem fails the whole payload.
func Decode(r io.Reader) ([]Row, error) {
	var payload any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrDatasetMalformed, err)
	}

	items, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: dataset must contain a JSON array of objects", ErrDatasetMalformed)
	}

	rows := make([]Row, 0, len(items))
	for i, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: row %d is invalid, each row must be a JSON object", ErrDatasetMalformed, i)
		}
		for _, k := range requiredKeys {
			if _, ok := obj[k]; !ok {
				return nil, fmt.Errorf("%w: row %d missing required fields, expected keys %v", ErrDatasetMalformed, i, requiredKeys)
			}
		}
		rows = append(rows, Row{
			Name:   coerce(obj["name"]),
			City:   coerce(obj["city"]),
			Status: coerce(obj["status"]),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: dataset is empty (no rows)", ErrDatasetMalformed)
	}
	return rows, nil
}

// coerce renders a decoded JSON value as text. null becomes "" so it is
// reported as a blank field by Validate.
func coerce(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			return fmt.Sprint(x)
		}
		return string(bytes.TrimRight(buf.Bytes(), "\n"))
	}
}
