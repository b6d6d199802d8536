package models

import "time"

// Hotspot is a spatial bin whose incident count crossed the configured
// threshold during a detection pass. Once persisted it is called an
// alert; the record is append-only and never deduplicated against
// earlier alerts for the same bin (each pass is a density snapshot).
type Hotspot struct {
	ID        int64     `json:"id,omitempty" db:"id"`
	LatBin    float64   `json:"lat_bin" db:"lat_bin"`
	LonBin    float64   `json:"lon_bin" db:"lon_bin"`
	Count     int       `json:"count" db:"count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NearbyAlert is an alert annotated with its great-circle distance
// from a query point.
type NearbyAlert struct {
	Hotspot
	DistanceKm float64 `json:"distance_km"`
}

// NearbyRequest is the body of POST /api/alerts/nearby. Coordinates
// are pointers so that a missing field is distinguishable from a
// legitimate zero value (the equator and the prime meridian exist).
type NearbyRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	RadiusKm  float64  `json:"radius_km"`
	Limit     int      `json:"limit"`
}
