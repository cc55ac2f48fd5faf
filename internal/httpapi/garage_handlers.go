package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/pitstop/internal/geo"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/service"
	"github.com/UnknownOlympus/pitstop/internal/storage"
	"github.com/go-chi/chi/v5"
)

// multipart overhead allowed on top of the image itself
const formOverhead = 1 << 20

func (s *server) handleGarageRegistration(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+formOverhead)
	if err := r.ParseMultipartForm(formOverhead); err != nil {
		writeError(w, r, s.log, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	var services []string
	if raw := r.FormValue("serviceType"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &services); err != nil {
			writeError(w, r, s.log, fmt.Errorf("%w: serviceType must be a JSON array", errBadRequest))
			return
		}
	}

	location, err := parseLocation(r.FormValue("latitude"), r.FormValue("longitude"))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	reg := service.GarageRegistration{
		Name:         r.FormValue("garageName"),
		Email:        r.FormValue("email"),
		Password:     r.FormValue("password"),
		Contact:      r.FormValue("contact"),
		Address:      r.FormValue("address"),
		ServiceTypes: services,
		VehicleType:  models.VehicleType(r.FormValue("vehicleType")),
		Location:     location,
	}

	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		reg.Image = file
	case !errors.Is(err, http.ErrMissingFile):
		writeError(w, r, s.log, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	garage, err := s.garages.Register(r.Context(), reg)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, garage)
}

func (s *server) handleNearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	origin, err := parseLocation(query.Get("lat"), query.Get("lng"))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	if origin == nil {
		writeError(w, r, s.log, geo.ErrLocationUnavailable)
		return
	}

	var radius float64
	if raw := query.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, s.log, fmt.Errorf("%w: radius must be a number", errBadRequest))
			return
		}
	}

	garages, err := s.garages.Nearby(r.Context(), *origin, radius)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	writeJSON(w, http.StatusOK, garages)
}

func (s *server) handleDistance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, s.log, fmt.Errorf("%w: garage id must be a number", errBadRequest))
		return
	}

	query := r.URL.Query()
	origin, err := parseLocation(query.Get("lat"), query.Get("lng"))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	result, err := s.garages.Distance(r.Context(), id, origin)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseLocation returns nil when both values are absent. Half a position is a bad request.
func parseLocation(rawLat, rawLng string) (*models.Coordinates, error) {
	rawLat, rawLng = strings.TrimSpace(rawLat), strings.TrimSpace(rawLng)
	if rawLat == "" && rawLng == "" {
		return nil, nil
	}
	if rawLat == "" || rawLng == "" {
		return nil, fmt.Errorf("%w: latitude and longitude go together", errBadRequest)
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude must be a number", errBadRequest)
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude must be a number", errBadRequest)
	}

	coords := &models.Coordinates{Latitude: lat, Longitude: lng}
	if err = coords.Validate(); err != nil {
		return nil, err
	}

	return coords, nil
}
