package models

import (
	"errors"
	"fmt"
	"slices"
)

// Errors returned while validating garage data.
var (
	ErrUnknownVehicleType = errors.New("unknown vehicle type")
	ErrUnknownServiceType = errors.New("service type is not offered for this vehicle type")
)

// VehicleType is the kind of vehicle a garage works on.
type VehicleType string

const (
	VehicleBike VehicleType = "bike"
	VehicleCar  VehicleType = "car"
)

// serviceCatalog lists the services a garage may offer per vehicle type.
var serviceCatalog = map[VehicleType][]string{
	VehicleBike: {
		"Bike Repair",
		"Bike Oil Change",
		"Bike Tire Replacement",
	},
	VehicleCar: {
		"Car Repair",
		"Car Full Service",
		"Car Oil Change",
		"Car Battery Check",
		"Car Tire Replacement",
	},
}

// Services returns the catalog of services for the vehicle type.
func (v VehicleType) Services() []string {
	return slices.Clone(serviceCatalog[v])
}

// Valid reports whether v is a known vehicle type.
func (v VehicleType) Valid() bool {
	_, ok := serviceCatalog[v]
	return ok
}

// ValidateServices checks that every service belongs to the catalog of the vehicle type.
func (v VehicleType) ValidateServices(services []string) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownVehicleType, v)
	}
	if len(services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrUnknownServiceType)
	}
	for _, s := range services {
		if !slices.Contains(serviceCatalog[v], s) {
			return fmt.Errorf("%w: %q for %s", ErrUnknownServiceType, s, v)
		}
	}

	return nil
}

// Garage is a workshop registered by a garage owner account.
type Garage struct {
	ID                int64        `json:"id"`
	OwnerID           int64        `json:"owner_id"`
	Name              string       `json:"garage_name"`
	Email             string       `json:"email"`
	Contact           string       `json:"contact"`
	Address           string       `json:"address"`
	ServiceTypes      []string     `json:"service_types"`
	VehicleType       VehicleType  `json:"vehicle_type"`
	Location          *Coordinates `json:"location,omitempty"` // nil until geocoded
	ImagePath         string       `json:"image,omitempty"`
	GeocodingAttempts int          `json:"-"`
}

// Offers reports whether the garage provides the given service.
func (g Garage) Offers(service string) bool {
	return slices.Contains(g.ServiceTypes, service)
}
