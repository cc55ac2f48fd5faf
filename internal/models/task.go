package models

// GeocodeTask represents a garage whose coordinates still have to be resolved from its address.
type GeocodeTask struct {
	GarageID int64  // GarageID is the garage waiting for coordinates.
	Address  string // Address is the location to be geocoded.
}
