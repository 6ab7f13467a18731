package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taxi-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Success(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 12345.6,
				"duration": 900,
				"geometry": {"coordinates": [[13.4, 52.5], [13.41, 52.51], [1]]}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	route, err := client.Lookup(context.Background(), entity.Point{Lat: 52.5, Lng: 13.4}, entity.Point{Lat: 52.51, Lng: 13.41})
	require.NoError(t, err)

	assert.Equal(t, "/route/v1/driving/13.4,52.5;13.41,52.51", gotPath)
	assert.Equal(t, "overview=full&geometries=geojson", gotQuery)
	assert.InDelta(t, 12.3456, route.DistanceKm, 1e-9)
	assert.InDelta(t, 15.0, route.DurationMin, 1e-9)
	assert.Equal(t, [][2]float64{{52.5, 13.4}, {52.51, 13.41}}, route.Path)
}

func TestLookup_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
		{"no routes", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
		}},
		{"too slow", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"routes":[{"distance":1,"duration":1}]}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL, 50*time.Millisecond)
			route, err := client.Lookup(context.Background(), entity.Point{Lat: 1, Lng: 2}, entity.Point{Lat: 3, Lng: 4})
			assert.Nil(t, route)
			assert.ErrorIs(t, err, ErrRouteNotFound)
		})
	}
}

func TestLookup_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Lookup(context.Background(), entity.Point{}, entity.Point{})
	assert.ErrorIs(t, err, ErrRouteNotFound)
}
