package dtos

import (
	"math"
	"strings"

	"vikare/airports/internal/constants"
)

// ListParams holds normalized pagination and search input for airport listing.
type ListParams struct {
	Page            int
	PageSize        int
	Search          string
	ExcludeMetadata bool
}

// NewListParams clamps and defaults raw query input. A nil pointer means the
// value was absent or unparsable.
func NewListParams(page, pageSize *int, search *string, excludeMetadata *bool) ListParams {
	p := ListParams{
		Page:     constants.DefaultPage,
		PageSize: constants.DefaultPageSize,
	}

	if page != nil && *page >= 1 {
		p.Page = *page
	}

	if pageSize != nil && *pageSize >= 1 {
		p.PageSize = min(*pageSize, constants.MaxPageSize)
	}

	if search != nil {
		p.Search = *search
	}

	if excludeMetadata != nil {
		p.ExcludeMetadata = *excludeMetadata
	}

	return p
}

// Offset is the number of filtered records skipped before the page starts.
// It saturates at math.MaxInt rather than overflowing for huge pages.
func (p ListParams) Offset() int {
	if p.PageSize > 0 && p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// DistanceParams holds normalized input for closest/farthest queries.
// Latitude and longitude are accepted as given.
type DistanceParams struct {
	Direction constants.Direction
	Latitude  float64
	Longitude float64
	Count     int
	Unit      constants.DistanceUnit
}

func NewDistanceParams(direction constants.Direction, lat, lng float64, count *int, unit *string) DistanceParams {
	p := DistanceParams{
		Direction: direction,
		Latitude:  lat,
		Longitude: lng,
		Count:     constants.DefaultCount,
		Unit:      constants.UnitKilometers,
	}

	if count != nil && *count >= 1 {
		p.Count = min(*count, constants.MaxCount)
	}

	if unit != nil {
		if u, ok := ParseUnit(*unit); ok {
			p.Unit = u
		}
	}

	return p
}

// ParseUnit accepts the single letter codes k, m, n as well as the long unit
// names, case-insensitive.
func ParseUnit(raw string) (constants.DistanceUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "k", "km", "kilometers", "kilometres":
		return constants.UnitKilometers, true
	case "m", "mi", "miles":
		return constants.UnitMiles, true
	case "n", "nm", "nautical-miles", "nauticalmiles":
		return constants.UnitNauticalMiles, true
	}
	return "", false
}
