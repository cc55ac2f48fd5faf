package geo

import (
	"math"
	"sort"

	"github.com/UnknownOlympus/pitstop/internal/models"
)

// Ranked pairs an item with its distance from the search origin.
type Ranked[T any] struct {
	Item   T
	Meters float64
}

// Rank computes the distance from origin to every item that has a location and returns
// them sorted nearest first. Items whose locator returns nil are skipped. Ties keep
// their input order.
func Rank[T any](origin models.Coordinates, items []T, locate func(T) *models.Coordinates) ([]Ranked[T], error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		loc := locate(item)
		if loc == nil {
			continue
		}
		meters, err := Distance(origin, *loc)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, Ranked[T]{Item: item, Meters: meters})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Meters < ranked[j].Meters })

	return ranked, nil
}

// Within keeps the ranked items not farther than radius meters.
func Within[T any](ranked []Ranked[T], radius float64) []Ranked[T] {
	out := ranked[:0:0]
	for _, r := range ranked {
		if r.Meters <= radius {
			out = append(out, r)
		}
	}

	return out
}

// Nearest returns the closest ranked item, false when there is none.
func Nearest[T any](ranked []Ranked[T]) (Ranked[T], bool) {
	if len(ranked) == 0 {
		var zero Ranked[T]
		return zero, false
	}
	best := ranked[0]
	for _, r := range ranked[1:] {
		if r.Meters < best.Meters {
			best = r
		}
	}

	return best, true
}

// Box is a latitude/longitude rectangle in decimal degrees. Center is the point the box
// was built around; stores rank truncated results by their distance from it.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	Center         models.Coordinates
}

// BoundingBox returns a rectangle that contains every point within radius meters of center.
// Boxes touching a pole or crossing the antimeridian span all longitudes.
func BoundingBox(center models.Coordinates, radius float64) (Box, error) {
	if err := center.Validate(); err != nil {
		return Box{}, err
	}

	dLat := toDegrees(radius / (EarthRadiusKm * metersPerKm))
	box := Box{
		MinLat: math.Max(-90, center.Latitude-dLat),
		MaxLat: math.Min(90, center.Latitude+dLat),
		MinLng: -180,
		MaxLng: 180,
		Center: center,
	}
	if box.MinLat <= -90 || box.MaxLat >= 90 {
		return box, nil
	}

	dLng := dLat / math.Cos(toRadians(center.Latitude))
	minLng, maxLng := center.Longitude-dLng, center.Longitude+dLng
	if minLng < -180 || maxLng > 180 {
		return box, nil
	}
	box.MinLng, box.MaxLng = minLng, maxLng

	return box, nil
}

// Contains reports whether c lies inside the box.
func (b Box) Contains(c models.Coordinates) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLng && c.Longitude <= b.MaxLng
}

// CurveMidpoint returns the control point used to draw a bent line from start to end:
// the midpoint pushed a fifth of the span sideways.
func CurveMidpoint(start, end models.Coordinates) models.Coordinates {
	const bend = 0.2

	return models.Coordinates{
		Latitude:  (start.Latitude+end.Latitude)/2 + (end.Latitude-start.Latitude)*bend,
		Longitude: (start.Longitude+end.Longitude)/2 - (end.Longitude-start.Longitude)*bend,
	}
}
