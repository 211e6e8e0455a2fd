package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"vikare/airports/internal/constants"
	"vikare/airports/internal/db/repositories"
	"vikare/airports/internal/geo"
	"vikare/airports/internal/models/dtos"
	"vikare/airports/internal/models/entities"
)

var ErrAirportNotFound = errors.New("airport not found")

// AirportService is the query surface consumed by the HTTP handlers.
type AirportService interface {
	ListAirports(params dtos.ListParams) (*dtos.AirportListResult, error)
	GetAirport(id int) (*entities.Airport, error)
	AirportsByDistance(params dtos.DistanceParams) ([]entities.AirportDistance, error)
}

type AirportQueryService struct {
	repo repositories.AirportReader
}

// Ensure AirportQueryService implements AirportService
var _ AirportService = (*AirportQueryService)(nil)

func NewAirportQueryService(repo repositories.AirportReader) *AirportQueryService {
	return &AirportQueryService{repo: repo}
}

// ListAirports filters by search term, then pages through the filtered set.
// Metadata.Total is the size of the filtered set, before paging.
func (svc *AirportQueryService) ListAirports(params dtos.ListParams) (*dtos.AirportListResult, error) {
	airports, err := svc.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}

	if params.Search != "" {
		airports = filterAirports(airports, params.Search)
	}

	total := len(airports)
	start := min(params.Offset(), total)
	end := min(start+params.PageSize, total)

	page := make([]entities.Airport, end-start)
	copy(page, airports[start:end])

	result := &dtos.AirportListResult{Data: page}
	if !params.ExcludeMetadata {
		result.Metadata = &dtos.AirportListMetadata{
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		}
	}

	return result, nil
}

func (svc *AirportQueryService) GetAirport(id int) (*entities.Airport, error) {
	airport, err := svc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get airport %d: %w", id, err)
	}
	if airport == nil {
		return nil, ErrAirportNotFound
	}
	return airport, nil
}

// AirportsByDistance ranks every airport by its distance from the query point
// and returns the first Count. Ties keep dataset order.
func (svc *AirportQueryService) AirportsByDistance(params dtos.DistanceParams) ([]entities.AirportDistance, error) {
	airports, err := svc.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to rank airports: %w", err)
	}

	ranked := make([]entities.AirportDistance, len(airports))
	for i, a := range airports {
		ranked[i] = entities.NewAirportDistance(a)
		ranked[i].Distance = geo.Distance(params.Latitude, params.Longitude, a.Latitude, a.Longitude, params.Unit)
	}

	slices.SortStableFunc(ranked, func(a, b entities.AirportDistance) int {
		if params.Direction == constants.DirectionFarthest {
			a, b = b, a
		}
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})

	return ranked[:min(params.Count, len(ranked))], nil
}

func filterAirports(airports []entities.Airport, search string) []entities.Airport {
	needle := strings.ToLower(search)

	var matched []entities.Airport
	for _, a := range airports {
		if containsFold(a.Name, needle) || containsFold(a.City, needle) || containsFold(a.Country, needle) {
			matched = append(matched, a)
		}
	}
	return matched
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
