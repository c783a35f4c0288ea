package errors

import (
	"math"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name string
		h, w int
		want Code
	}{
		{"valid", 70, 70, ""},
		{"minimum", MinDimension, MinDimension, ""},
		{"maximum", MaxDimension, MaxDimension, ""},
		{"negative height", -1, 10, ErrCodeInvalidSize},
		{"negative width", 10, -4, ErrCodeInvalidSize},
		{"too small", 2, 10, ErrCodeInvalidInput},
		{"too large", 10, MaxDimension + 1, ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.h, tt.w)
			if got := GetCode(err); got != tt.want {
				t.Errorf("ValidateDimensions(%d, %d) code = %q, want %q", tt.h, tt.w, got, tt.want)
			}
		})
	}
}

func TestValidateDensity(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"half", 0.5, false},
		{"full", 1, false},
		{"zero", 0, true},
		{"negative", -0.1, true},
		{"above one", 1.01, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDensity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDensity(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDensity) {
				t.Errorf("ValidateDensity(%v) code = %q", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateFactors(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  float64
		wantErr bool
	}{
		{"default", 0.1, 0.3, false},
		{"equal", 0.2, 0.2, false},
		{"inverted", 0.3, 0.1, true},
		{"zero min", 0, 0.3, true},
		{"max above one", 0.5, 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFactors(tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFactors(%v, %v) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChance(t *testing.T) {
	if err := ValidateChance("l-shape chance", 0.3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateChance("l-shape chance", 1.2); err == nil {
		t.Error("expected error for chance above one")
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"text", "ansi", "json", "svg"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"text", "text", false},
		{"upper case", "SVG", false},
		{"empty", "", true},
		{"unknown", "pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, supported)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
