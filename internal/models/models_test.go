package models_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinates_Validate(t *testing.T) {
	tests := []struct {
		name    string
		coords  models.Coordinates
		wantErr bool
	}{
		{name: "origin", coords: models.Coordinates{}},
		{name: "poles and antimeridian", coords: models.Coordinates{Latitude: -90, Longitude: 180}},
		{name: "kyiv", coords: models.Coordinates{Latitude: 50.45, Longitude: 30.52}},
		{name: "latitude too high", coords: models.Coordinates{Latitude: 90.0001}, wantErr: true},
		{name: "latitude too low", coords: models.Coordinates{Latitude: -91}, wantErr: true},
		{name: "longitude too high", coords: models.Coordinates{Longitude: 180.5}, wantErr: true},
		{name: "longitude too low", coords: models.Coordinates{Longitude: -181}, wantErr: true},
		{name: "NaN latitude", coords: models.Coordinates{Latitude: math.NaN()}, wantErr: true},
		{name: "infinite longitude", coords: models.Coordinates{Longitude: math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coords.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, models.ErrInvalidCoordinate)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRequestStatus_CanTransition(t *testing.T) {
	allowed := map[models.RequestStatus][]models.RequestStatus{
		models.StatusPending:  {models.StatusAccepted, models.StatusRejected},
		models.StatusAccepted: {models.StatusCompleted},
	}

	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			err := from.CanTransition(to)
			if contains(allowed[from], to) {
				require.NoError(t, err, "%s -> %s", from, to)
			} else {
				require.ErrorIs(t, err, models.ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func contains(list []models.RequestStatus, s models.RequestStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestRequestStatus_Valid(t *testing.T) {
	assert.True(t, models.StatusCompleted.Valid())
	assert.False(t, models.RequestStatus("pending").Valid())
}

func TestVehicleType_ValidateServices(t *testing.T) {
	t.Run("catalog services accepted", func(t *testing.T) {
		require.NoError(t, models.VehicleCar.ValidateServices([]string{"Car Repair", "Car Oil Change"}))
	})

	t.Run("service from other vehicle rejected", func(t *testing.T) {
		err := models.VehicleBike.ValidateServices([]string{"Car Repair"})
		require.ErrorIs(t, err, models.ErrUnknownServiceType)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		require.ErrorIs(t, models.VehicleBike.ValidateServices(nil), models.ErrUnknownServiceType)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		err := models.VehicleType("truck").ValidateServices([]string{"Car Repair"})
		require.ErrorIs(t, err, models.ErrUnknownVehicleType)
	})

	t.Run("services returns a copy", func(t *testing.T) {
		services := models.VehicleBike.Services()
		services[0] = "changed"
		assert.Equal(t, "Bike Repair", models.VehicleBike.Services()[0])
	})
}
