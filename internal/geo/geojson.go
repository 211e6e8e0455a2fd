package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"vikare/airports/internal/constants"
	"vikare/airports/internal/models/entities"
)

// FeatureCollection renders ranked airports as GeoJSON points, preserving order.
// The query point is included as the first feature with role "origin".
func FeatureCollection(lat, lng float64, unit constants.DistanceUnit, airports []entities.AirportDistance) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	origin := geojson.NewFeature(orb.Point{lng, lat})
	origin.Properties["role"] = "origin"
	fc.Append(origin)

	for i, a := range airports {
		f := geojson.NewFeature(orb.Point{a.Longitude, a.Latitude})
		f.ID = a.ID
		f.Properties["role"] = "airport"
		f.Properties["rank"] = i + 1
		f.Properties["name"] = a.Name
		f.Properties["city"] = a.City
		f.Properties["country"] = a.Country
		f.Properties["distance"] = a.Distance
		f.Properties["unit"] = string(unit)
		fc.Append(f)
	}

	return fc
}
