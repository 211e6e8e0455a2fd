package routes

import (
	"vikare/airports/internal/api"
	"vikare/airports/internal/constants"
	"vikare/airports/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers the airport query routes
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {
	airports := api.NewAirportsHandler(deps.Services.Airports, deps.Metrics)

	r.Route("/api/airports", func(ar chi.Router) {
		ar.Use(middleware.InFlightMiddleware(deps.Metrics))

		ar.Get("/", airports.ListAirports())
		// static segments win over {id} in chi
		ar.Get("/closest", airports.AirportsByDistance(constants.DirectionClosest))
		ar.Get("/farthest", airports.AirportsByDistance(constants.DirectionFarthest))
		ar.Get("/{id}", airports.GetAirport())
	})
}
