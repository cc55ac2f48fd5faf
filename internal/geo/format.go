package geo

import "fmt"

// Placeholder is shown instead of a distance when the driver's location is unknown.
const Placeholder = "—"

// FormatDistance renders meters for display: meters below one kilometer, kilometers above.
func FormatDistance(meters float64) string {
	if meters < metersPerKm {
		return fmt.Sprintf("%.2f m", meters)
	}

	return fmt.Sprintf("%.2f km", meters/metersPerKm)
}

// FormatOptional renders a distance that may be missing.
func FormatOptional(meters *float64) string {
	if meters == nil {
		return Placeholder
	}

	return FormatDistance(*meters)
}
