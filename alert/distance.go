// Package alert implements the proximity alerter: great-circle distance
// from the observer's home position, per-aircraft dedup, embed
// formatting, and notifier dispatch.
package alert

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// meanEarthRadiusKM is the mean Earth radius used for great-circle
// distances (one degree of arc is about 111.195 km).
const meanEarthRadiusKM = 6371.0088

// DistanceKM returns the great-circle (haversine) distance between two
// (lat, lon) points in kilometers, on a sphere of meanEarthRadiusKM.
// orb's haversine works on its equatorial orb.EarthRadius, so its
// result is rescaled to the mean radius. orb.Point is (lon, lat), not
// (lat, lon), so the coordinates are swapped on the way in.
func DistanceKM(homeLat, homeLon, lat, lon float64) float64 {
	home := orb.Point{homeLon, homeLat}
	point := orb.Point{lon, lat}
	return geo.DistanceHaversine(home, point) / orb.EarthRadius * meanEarthRadiusKM
}
