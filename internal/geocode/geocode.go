// Package geocode wraps the Google Maps forward-geocoding API. It is only
// called when event locations are persisted; the matching core never talks
// to it and treats a missing coordinate as plain absence of data.
package geocode

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"googlemaps.github.io/maps"
)

// requestTimeout bounds every geocoding call so a slow upstream can never
// stall event creation.
const requestTimeout = 5 * time.Second

var (
	mapsClient *maps.Client
	clientOnce sync.Once
	clientErr  error
)

// client initializes and returns a singleton Google Maps client.
func client() (*maps.Client, error) {
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_API_KEY")
		if apiKey == "" {
			clientErr = fmt.Errorf("MAPS_API_KEY environment variable not set")
			return
		}
		mapsClient, clientErr = maps.NewClient(maps.WithAPIKey(apiKey))
	})
	return mapsClient, clientErr
}

// Address resolves a free-text address to a lat/lng pair. Any failure
// (missing key, timeout, zero results) is reported as an error; callers log
// it and carry on with no coordinate.
func Address(ctx context.Context, address string) (lat, lng float64, err error) {
	c, err := client()
	if err != nil {
		return 0, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	results, err := c.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", address)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
