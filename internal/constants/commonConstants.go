package constants

type (
	APIStatus      string
	DistanceUnit   string
	Direction      int
	ResponseFormat string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	UnitKilometers    DistanceUnit = "k"
	UnitMiles         DistanceUnit = "m"
	UnitNauticalMiles DistanceUnit = "n"

	FormatJSON    ResponseFormat = "json"
	FormatGeoJSON ResponseFormat = "geojson"
)

const (
	DirectionClosest Direction = iota
	DirectionFarthest
)

// Pagination and ranking limits
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
	DefaultCount    = 10
	MaxCount        = 50
)
