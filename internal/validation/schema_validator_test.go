package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v, err := NewSchemaValidator("test.schema.json", []byte(testSchema))
	require.NoError(t, err)

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{name: "valid data", data: `{"name": "Glycerin", "age": 30}`},
		{name: "valid data without optional field", data: `{"name": "Water"}`},
		{name: "missing required field", data: `{"age": 25}`, wantError: true, errorMsg: "(root)"},
		{name: "wrong type for field", data: `{"name": "Shea", "age": "thirty"}`, wantError: true, errorMsg: "/age"},
		{name: "constraint violation", data: `{"name": "Shea", "age": -5}`, wantError: true, errorMsg: "/age"},
		{name: "invalid JSON", data: `{"name": "Shea", "age": }`, wantError: true, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestNewSchemaValidator_BadSchema(t *testing.T) {
	_, err := NewSchemaValidator("broken.schema.json", []byte(`{"type": `))
	assert.ErrorContains(t, err, "failed to parse schema")

	_, err = NewSchemaValidator("wrong.schema.json", []byte(`{"type": 12}`))
	assert.ErrorContains(t, err, "failed to compile schema")
}

func TestSeedValidator(t *testing.T) {
	v, err := SeedValidator()
	require.NoError(t, err)

	again, err := SeedValidator()
	require.NoError(t, err)
	assert.Same(t, v, again, "embedded schema compiled once")

	tests := []struct {
		name      string
		data      string
		wantError bool
	}{
		{name: "empty document", data: `{}`},
		{name: "ingredient", data: `{"ingredients": [{"id": "gly", "name": "Glycerin", "display_unit": "kg"}]}`},
		{name: "missing id", data: `{"ingredients": [{"name": "Glycerin", "display_unit": "kg"}]}`, wantError: true},
		{name: "unknown unit", data: `{"ingredients": [{"id": "gly", "name": "Glycerin", "display_unit": "lb"}]}`, wantError: true},
		{name: "zero capacity", data: `{"packaging": [{"id": "jar", "name": "Jar", "capacity_ml": 0}]}`, wantError: true},
		{name: "fractional packaging stock", data: `{"packaging": [{"id": "jar", "name": "Jar", "capacity_ml": 100, "stock": 1.5}]}`, wantError: true},
		{name: "negative formula amount", data: `{"products": [{"id": "c", "name": "C", "packaging_id": "jar", "formula": [{"ingredient_id": "gly", "amount_per_unit_volume": -1}]}]}`, wantError: true},
		{name: "unknown top-level key", data: `{"ingredient": []}`, wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data))
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeedValidator_ExampleFile(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "configs", "seed.example.json"))
	require.NoError(t, err)

	v, err := SeedValidator()
	require.NoError(t, err)
	assert.NoError(t, v.ValidateBytes(data))
}
