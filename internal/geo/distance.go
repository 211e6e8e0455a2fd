package geo

import (
	"math"

	"vikare/airports/internal/constants"
)

const (
	// nautical miles per degree of arc times statute miles per nautical mile
	milesPerDegree    = 60 * 1.1515
	kilometersPerMile = 1.609344
	nauticalPerMile   = 0.8684
)

// Distance returns the great-circle distance between two points using the
// spherical law of cosines. Identical points always return 0.
func Distance(lat1, lon1, lat2, lon2 float64, unit constants.DistanceUnit) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	theta := lon1 - lon2
	d := math.Sin(degreesToRadians(lat1))*math.Sin(degreesToRadians(lat2)) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*math.Cos(degreesToRadians(theta))

	// rounding can push nearly identical or antipodal points outside [-1, 1]
	d = max(-1, min(1, d))

	dist := radiansToDegrees(math.Acos(d)) * milesPerDegree

	switch unit {
	case constants.UnitKilometers:
		dist *= kilometersPerMile
	case constants.UnitNauticalMiles:
		dist *= nauticalPerMile
	}

	return dist
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad / math.Pi * 180.0
}
