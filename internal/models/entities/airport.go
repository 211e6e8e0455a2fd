package entities

// Airport is a single OpenFlights airport record. Records are never mutated
// after the dataset is loaded.
type Airport struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	IATA      string  `json:"iata"`
	ICAO      string  `json:"icao"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  int     `json:"altitude"` // feet
	Timezone  string  `json:"timezone"` // hours offset from UTC, may be fractional
	DST       string  `json:"dst"`      // one of E, A, S, O, Z, N, U
	TZ        string  `json:"tz"`       // IANA name, e.g. America/Los_Angeles
	Source    string  `json:"source"`
}

// AirportDistance is the projection returned by distance queries.
type AirportDistance struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance"`
}

// NewAirportDistance copies the projected fields of a. Distance is left at zero.
func NewAirportDistance(a Airport) AirportDistance {
	return AirportDistance{
		ID:        a.ID,
		Name:      a.Name,
		City:      a.City,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}
