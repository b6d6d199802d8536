// Package hotspot turns an incident snapshot into ranked spatial
// hotspots: incidents are grouped into coarse coordinate bins and
// bins that reach a minimum incident count are reported.
package hotspot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/citywatch/alerts-backend-go/internal/models"
	"github.com/citywatch/alerts-backend-go/internal/spatial"
)

// ErrInvalidParameter is returned for a non-positive threshold or a
// negative granularity.
var ErrInvalidParameter = errors.New("invalid parameter")

type binKey struct {
	lat float64
	lon float64
}

// Detect bins every locatable incident at the given granularity and
// returns the bins whose incident count reaches minCount, ordered by
// count descending with ties broken by (lat_bin, lon_bin) ascending.
//
// Incidents without coordinates are skipped. Detect is a pure function
// of its inputs: re-running it over the same snapshot yields the same
// hotspots, so concurrent or repeated passes are safe.
func Detect(incidents []models.Incident, granularity, minCount int) ([]models.Hotspot, error) {
	if minCount < 1 {
		return nil, fmt.Errorf("%w: min_count must be >= 1, got %d", ErrInvalidParameter, minCount)
	}
	if granularity < 0 {
		return nil, fmt.Errorf("%w: granularity must be >= 0, got %d", ErrInvalidParameter, granularity)
	}

	counts := make(map[binKey]int)
	for i := range incidents {
		inc := &incidents[i]
		if !inc.HasLocation() {
			continue
		}
		latBin, lonBin, err := spatial.BinCoordinate(*inc.Latitude, *inc.Longitude, granularity)
		if err != nil {
			// A malformed coordinate affects only that incident.
			continue
		}
		counts[binKey{lat: latBin, lon: lonBin}]++
	}

	hotspots := make([]models.Hotspot, 0, len(counts))
	for key, count := range counts {
		if count >= minCount {
			hotspots = append(hotspots, models.Hotspot{
				LatBin: key.lat,
				LonBin: key.lon,
				Count:  count,
			})
		}
	}

	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Count != hotspots[j].Count {
			return hotspots[i].Count > hotspots[j].Count
		}
		if hotspots[i].LatBin != hotspots[j].LatBin {
			return hotspots[i].LatBin < hotspots[j].LatBin
		}
		return hotspots[i].LonBin < hotspots[j].LonBin
	})

	return hotspots, nil
}
