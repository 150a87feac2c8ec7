package overpass

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"swapmeet/config"
	"swapmeet/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPlaceDiscovery_DisabledReturnsNil(t *testing.T) {
	assert.Nil(t, NewPlaceDiscovery(nil, newTestLogger()))
	assert.Nil(t, NewPlaceDiscovery(&config.PlacesConfig{Enabled: false, BaseURL: "http://overpass"}, newTestLogger()))
}

func TestPlaceDiscovery_NearbyPlaces(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("data")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"elements": [
				{"lat": 40.01, "lon": -74.0, "tags": {"name": "Corner Cafe", "addr:city": "Testville"}},
				{"lat": 40.02, "lon": -74.0, "tags": {"amenity": "cafe"}}
			]
		}`))
	}))
	defer server.Close()

	discovery := NewPlaceDiscovery(&config.PlacesConfig{Enabled: true, BaseURL: server.URL}, newTestLogger())
	require.NotNil(t, discovery)

	places, err := discovery.NearbyPlaces(context.Background(), 40.0, -74.0, 5, entity.CategoryCafe)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, `node["amenity"="cafe"]`)
	assert.Contains(t, gotQuery, "around:5000")

	// The unnamed node is dropped.
	require.Len(t, places, 1)
	assert.Equal(t, "Corner Cafe", places[0].Name)
	assert.Equal(t, entity.CategoryCafe, places[0].Category)
	assert.Equal(t, "Testville", places[0].Address)
}

func TestPlaceDiscovery_UnmappedCategory(t *testing.T) {
	discovery := NewPlaceDiscovery(&config.PlacesConfig{Enabled: true, BaseURL: "http://overpass.invalid"}, newTestLogger())

	places, err := discovery.NearbyPlaces(context.Background(), 40.0, -74.0, 5, entity.CategoryOther)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestPlaceDiscovery_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	discovery := NewPlaceDiscovery(&config.PlacesConfig{Enabled: true, BaseURL: server.URL}, newTestLogger())

	_, err := discovery.NearbyPlaces(context.Background(), 40.0, -74.0, 5, entity.CategoryCafe)
	assert.Error(t, err)
}
