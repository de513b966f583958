package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	rows, err := Decode(strings.NewReader(`[
		{"name": "Ava Smith", "city": "Austin", "status": "active"},
		{"name": 42, "city": true, "status": null, "extra": "ignored"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Name: "Ava Smith", City: "Austin", Status: "active"},
		{Name: "42", City: "true", Status: ""},
	}, rows)
}

func TestDecodeStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"not json", `{`, "invalid JSON"},
		{"object instead of array", `{"name":"a"}`, "JSON array"},
		{"empty array", `[]`, "empty"},
		{"row not object", `[["Ava","Austin","active"]]`, "row 0 is invalid"},
		{"missing key", `[{"name":"Ava","city":"Austin","status":"active"},{"name":"Bo","city":"Boston"}]`, "row 1 missing required fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Decode(strings.NewReader(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDatasetMalformed)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Nil(t, rows)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrDatasetMissing)

	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Ava Smith","city":"Austin","status":"active"}]`), 0o600))

	rows, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCoerceNested(t *testing.T) {
	assert.Equal(t, `{"a":1}`, coerce(map[string]any{"a": 1}))
	assert.Equal(t, `["x","<y>"]`, coerce([]any{"x", "<y>"}))
	assert.Equal(t, "1.5", coerce(jsonNumber("1.5")))
}
