package generator

import (
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
)

// Default generation parameters.
const (
	DefaultHeight        = 70
	DefaultWidth         = 70
	DefaultDensity       = 0.5
	DefaultRetries       = 20
	DefaultRoomMin       = 0.1
	DefaultRoomMax       = 0.3
	DefaultLShapeChance  = 0.3
	DefaultFurnishChance = 0.0
)

// Options configures a generation run.
type Options struct {
	// Seed drives every random draw.
	Seed uint64 `json:"seed" toml:"seed"`

	// Height and Width give the map size.
	Height int `json:"height" toml:"height"`
	Width  int `json:"width" toml:"width"`

	// Density is the target fraction of the map covered by rooms, in (0, 1].
	Density float64 `json:"density" toml:"density"`

	// Retries bounds the shapes tried next to one frontier room.
	Retries int `json:"retries" toml:"retries"`

	// RoomMin and RoomMax scale the map size into the room size range.
	RoomMin float64 `json:"room_min" toml:"room_min"`
	RoomMax float64 `json:"room_max" toml:"room_max"`

	// LShapeChance is the probability that a sampled room is L-shaped.
	LShapeChance float64 `json:"l_shape_chance" toml:"l_shape_chance"`

	// FurnishChance is the probability that a sampled room is a furnished
	// L-shaped room.
	FurnishChance float64 `json:"furnish_chance" toml:"furnish_chance"`

	// CarveEntrances turns one wall pair per room graph edge into doors.
	CarveEntrances bool `json:"carve_entrances" toml:"carve_entrances"`

	// Parallel enumerates placement candidates for each direction in its own
	// goroutine. Results are identical to the sequential search.
	Parallel bool `json:"parallel" toml:"parallel"`
}

// DefaultOptions returns the default parameters with the given seed.
func DefaultOptions(seed uint64) Options {
	return Options{
		Seed:           seed,
		Height:         DefaultHeight,
		Width:          DefaultWidth,
		Density:        DefaultDensity,
		Retries:        DefaultRetries,
		RoomMin:        DefaultRoomMin,
		RoomMax:        DefaultRoomMax,
		LShapeChance:   DefaultLShapeChance,
		FurnishChance:  DefaultFurnishChance,
		CarveEntrances: true,
	}
}

// Size returns the map size.
func (o Options) Size() geom.Size {
	return geom.Sz(o.Height, o.Width)
}

// Validate checks every parameter.
func (o Options) Validate() error {
	if err := errors.ValidateDimensions(o.Height, o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDensity(o.Density); err != nil {
		return err
	}
	if o.Retries < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "retries must be at least 1, got %d", o.Retries)
	}
	if err := errors.ValidateFactors(o.RoomMin, o.RoomMax); err != nil {
		return err
	}
	if err := errors.ValidateChance("l-shape chance", o.LShapeChance); err != nil {
		return err
	}
	if err := errors.ValidateChance("furnish chance", o.FurnishChance); err != nil {
		return err
	}
	if o.LShapeChance+o.FurnishChance > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "l-shape and furnish chances sum above 1")
	}
	return nil
}
