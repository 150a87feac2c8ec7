package osrm

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swapmeet/config"
	"swapmeet/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRoutePlanner_DisabledReturnsNil(t *testing.T) {
	assert.Nil(t, NewRoutePlanner(nil, newTestLogger()))
	assert.Nil(t, NewRoutePlanner(&config.RoutingConfig{Enabled: false, BaseURL: "http://osrm"}, newTestLogger()))
	assert.Nil(t, NewRoutePlanner(&config.RoutingConfig{Enabled: true}, newTestLogger()))
}

func TestRoutePlanner_PlanRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/walking/"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 3300,
				"geometry": {"coordinates": [[-74.0, 40.0], [-74.0, 40.01], [-74.0, 40.03]]}
			}]
		}`))
	}))
	defer server.Close()

	planner := NewRoutePlanner(&config.RoutingConfig{
		Enabled: true,
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, newTestLogger())
	require.NotNil(t, planner)

	route, err := planner.PlanRoute(context.Background(), 40.0, -74.0, 40.03, -74.0, service.TransportWalking)
	require.NoError(t, err)

	require.Len(t, route.Legs, 2)
	// 0.03 degrees of latitude is roughly 3.3 km.
	assert.InDelta(t, 3.3, route.TotalDistanceKm, 0.1)
	assert.InDelta(t, route.Legs[0].DistanceKm+route.Legs[1].DistanceKm, route.TotalDistanceKm, 1e-9)
}

func TestRoutePlanner_ErrorResponses(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		payload string
	}{
		{"service error", http.StatusInternalServerError, ""},
		{"no route", http.StatusOK, `{"code": "NoRoute", "routes": []}`},
		{"degenerate geometry", http.StatusOK, `{"code": "Ok", "routes": [{"geometry": {"coordinates": [[-74.0, 40.0]]}}]}`},
		{"garbage body", http.StatusOK, `not json`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.payload))
			}))
			defer server.Close()

			planner := NewRoutePlanner(&config.RoutingConfig{Enabled: true, BaseURL: server.URL}, newTestLogger())

			_, err := planner.PlanRoute(context.Background(), 40.0, -74.0, 40.03, -74.0, service.TransportWalking)
			assert.Error(t, err)
		})
	}
}

func TestProfileFor(t *testing.T) {
	assert.Equal(t, "walking", profileFor(service.TransportWalking))
	assert.Equal(t, "walking", profileFor(""))
	assert.Equal(t, "cycling", profileFor(service.TransportCycling))
	assert.Equal(t, "driving", profileFor(service.TransportDriving))
	assert.Equal(t, "driving", profileFor(service.TransportTransit))
}
