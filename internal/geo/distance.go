// Package geo implements great-circle math used to locate garages around a driver.
package geo

import (
	"errors"
	"math"

	"github.com/UnknownOlympus/pitstop/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

const metersPerKm = 1000.0

// ErrLocationUnavailable means the caller could not obtain its own position,
// so no distance can be computed. It is never returned by Distance itself.
var ErrLocationUnavailable = errors.New("location unavailable")

// Distance returns the great-circle distance in meters between a and b using the
// Haversine formula. Both points are validated and models.ErrInvalidCoordinate is
// returned for out-of-range input.
func Distance(a, b models.Coordinates) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	return haversine(a, b), nil
}

func haversine(a, b models.Coordinates) float64 {
	phi1 := toRadians(a.Latitude)
	phi2 := toRadians(b.Latitude)
	dPhi := toRadians(b.Latitude - a.Latitude)
	dLambda := toRadians(b.Longitude - a.Longitude)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// rounding may push h a hair outside [0, 1]
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c * metersPerKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
