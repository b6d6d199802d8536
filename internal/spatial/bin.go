package spatial

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned for coordinates that are not finite
// numbers inside [-90,90] latitude / [-180,180] longitude.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ValidateCoordinate checks that lat/lon form a usable geographic point.
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrInvalidCoordinate, lon)
	}
	return nil
}

// BinCoordinate maps a coordinate pair to its spatial bin key by
// rounding each component to granularity decimal digits.
//
// Rounding mode is round-half-to-even (math.RoundToEven), the IEEE 754
// default. Bin identity depends on this choice: the same coordinate at
// the same granularity must always land in the same bin, across runs
// and across machines.
func BinCoordinate(lat, lon float64, granularity int) (latBin, lonBin float64, err error) {
	if err := ValidateCoordinate(lat, lon); err != nil {
		return 0, 0, err
	}
	if granularity < 0 {
		granularity = 0
	}
	if granularity > 8 {
		granularity = 8
	}

	scale := math.Pow(10, float64(granularity))
	latBin = math.RoundToEven(lat*scale) / scale
	lonBin = math.RoundToEven(lon*scale) / scale
	return latBin, lonBin, nil
}
