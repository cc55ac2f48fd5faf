package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned when a latitude or longitude falls outside its valid range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinates represents a geographical point defined by its latitude and longitude
// in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the point, [-90, 90].
	Longitude float64 `json:"longitude"` // Longitude of the point, [-180, 180].
}

// Validate reports ErrInvalidCoordinate when the point is outside the valid ranges
// or carries a NaN/Inf component.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, c.Longitude)
	}

	return nil
}
