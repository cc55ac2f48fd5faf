package geocoding_test

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/geocoding"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestVisicomProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	apiKey := "test-api-key"
	unlimited := rate.NewLimiter(rate.Inf, 0)

	t.Run("request shape and result", func(t *testing.T) {
		client := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.True(t, strings.HasPrefix(req.URL.String(), geocoding.VisicomBaseURL))
			assert.Equal(t, "Khreshchatyk 1, Kyiv", req.URL.Query().Get("text"))
			assert.Equal(t, apiKey, req.URL.Query().Get("key"))
			assert.Equal(t, "1", req.URL.Query().Get("limit"))
			assert.Equal(t, "application/json", req.Header.Get("Accept"))

			return respond(http.StatusOK, `{"geo_centroid":{"coordinates":[30.5234,50.4501]}}`)
		}}

		coords, err := geocoding.NewVisicomProviderWithClient(client, apiKey, unlimited, logger).
			Geocode(ctx, "Khreshchatyk 1, Kyiv")

		require.NoError(t, err)
		assert.Equal(t, &models.Coordinates{Latitude: 50.4501, Longitude: 30.5234}, coords)
	})

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "empty response", status: http.StatusOK, body: `{}`, wantErr: geocoding.ErrVisicomEmptyResponse},
		{
			name: "three coordinates", status: http.StatusOK,
			body: `{"geo_centroid":{"coordinates":[1,2,3]}}`, wantErr: geocoding.ErrVisicomInvalidCoords,
		},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{}`, wantErr: geocoding.ErrVisicomUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantErr: geocoding.ErrVisicomUnauthorized},
		{
			name: "latitude out of range", status: http.StatusOK,
			body: `{"geo_centroid":{"coordinates":[30.5,95]}}`, wantErr: models.ErrInvalidCoordinate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockHTTPClient{doFunc: func(*http.Request) (*http.Response, error) {
				return respond(tt.status, tt.body)
			}}

			coords, err := geocoding.NewVisicomProviderWithClient(client, apiKey, unlimited, logger).Geocode(ctx, "x")

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, coords)
		})
	}

	t.Run("server error", func(t *testing.T) {
		client := &mockHTTPClient{doFunc: func(*http.Request) (*http.Response, error) {
			return respond(http.StatusInternalServerError, `oops`)
		}}

		_, err := geocoding.NewVisicomProviderWithClient(client, apiKey, unlimited, logger).Geocode(ctx, "x")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "visicom API returned status 500")
	})

	t.Run("empty address skips the API", func(t *testing.T) {
		client := &mockHTTPClient{doFunc: func(*http.Request) (*http.Response, error) {
			t.Fatal("unexpected request")
			return nil, nil
		}}

		_, err := geocoding.NewVisicomProviderWithClient(client, apiKey, unlimited, logger).Geocode(ctx, "")

		require.ErrorIs(t, err, geocoding.ErrVisicomEmptyAddress)
	})

	t.Run("limiter honours context", func(t *testing.T) {
		client := &mockHTTPClient{doFunc: func(*http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"geo_centroid":{"coordinates":[30.5,50.4]}}`)
		}}
		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		provider := geocoding.NewVisicomProviderWithClient(client, apiKey, limiter, logger)

		_, err := provider.Geocode(ctx, "first")
		require.NoError(t, err)

		tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		_, err = provider.Geocode(tctx, "second")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit exceeded")
	})
}
