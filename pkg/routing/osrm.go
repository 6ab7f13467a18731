package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"taxi-booking/internal/data/entity"
)

// ErrRouteNotFound covers every failed lookup: transport, status, body and
// empty results all wrap it.
var ErrRouteNotFound = errors.New("route lookup failed")

// Client queries an OSRM compatible routing service for driving routes.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Lookup returns the first driving route from start to end.
func (c *Client) Lookup(ctx context.Context, start, end entity.Point) (*entity.Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?overview=full&geometries=geojson",
		c.baseURL,
		coord(start.Lng), coord(start.Lat),
		coord(end.Lng), coord(end.Lat),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRouteNotFound, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: routing service returned %d", ErrRouteNotFound, resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRouteNotFound, err)
	}
	if len(body.Routes) == 0 {
		return nil, fmt.Errorf("%w: no route between points", ErrRouteNotFound)
	}

	first := body.Routes[0]
	path := make([][2]float64, 0, len(first.Geometry.Coordinates))
	for _, pair := range first.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		path = append(path, [2]float64{pair[1], pair[0]})
	}

	return &entity.Route{
		DistanceKm:  first.Distance / 1000,
		DurationMin: first.Duration / 60,
		Path:        path,
	}, nil
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
