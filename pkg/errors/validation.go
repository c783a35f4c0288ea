package errors

import (
	"math"
	"slices"
	"strings"
)

// Limits applied to user-supplied generation parameters.
const (
	// MaxDimension bounds each side of a requested dungeon.
	MaxDimension = 512

	// MinDimension is the smallest side that can hold a walled room.
	MinDimension = 3
)

// ValidateDimensions checks a requested dungeon size.
//
// Negative values are reported as INVALID_SIZE so they match the error the
// geometry package raises for the same mistake. Values that are merely too
// small or too large are INVALID_INPUT.
func ValidateDimensions(h, w int) error {
	if h < 0 || w < 0 {
		return New(ErrCodeInvalidSize, "size cannot be negative: %dx%d", h, w)
	}
	if h < MinDimension || w < MinDimension {
		return New(ErrCodeInvalidInput, "size %dx%d too small (min %d per side)", h, w, MinDimension)
	}
	if h > MaxDimension || w > MaxDimension {
		return New(ErrCodeInvalidInput, "size %dx%d too large (max %d per side)", h, w, MaxDimension)
	}
	return nil
}

// ValidateDensity checks that a target density lies in (0, 1].
func ValidateDensity(d float64) error {
	if math.IsNaN(d) || d <= 0 || d > 1 {
		return New(ErrCodeInvalidDensity, "density must be in (0, 1], got %v", d)
	}
	return nil
}

// ValidateFactors checks a room size factor range: 0 < lo <= hi <= 1.
func ValidateFactors(lo, hi float64) error {
	if lo <= 0 || hi > 1 || lo > hi {
		return New(ErrCodeInvalidInput, "room size factors must satisfy 0 < min <= max <= 1, got %v..%v", lo, hi)
	}
	return nil
}

// ValidateChance checks a probability in [0, 1].
func ValidateChance(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidInput, "%s must be in [0, 1], got %v", name, p)
	}
	return nil
}

// ValidateFormat checks that format is one of supported, case-insensitively.
func ValidateFormat(format string, supported []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(supported, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(supported, ", "))
	}
	return nil
}
