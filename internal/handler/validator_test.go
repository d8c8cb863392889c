package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type modeStruct struct {
	Mode string `json:"mode" validate:"mode"`
}

type unitStruct struct {
	Unit string `json:"unit" validate:"required,displayunit"`
}

func TestValidator_Mode(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{"units", "units", false},
		{"batch volume", "batchVolume", false},
		{"empty uses default", "", false},
		{"wrong case", "BatchVolume", true},
		{"unknown", "litres", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(modeStruct{Mode: tt.mode})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, ErrMsgInvalidMode, FormatValidationError(err)["mode"])
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_DisplayUnit(t *testing.T) {
	v := GetValidator()

	for _, unit := range []string{"kg", "l", "pcs", "KG"} {
		assert.NoError(t, v.ValidateStruct(unitStruct{Unit: unit}), unit)
	}
	for _, unit := range []string{"g", "ml", "oz"} {
		assert.Error(t, v.ValidateStruct(unitStruct{Unit: unit}), unit)
	}

	errs := FormatValidationError(v.ValidateStruct(unitStruct{}))
	assert.Equal(t, "This field is required", errs["unit"])
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("x")))
}
