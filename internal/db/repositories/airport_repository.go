package repositories

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"vikare/airports/internal/models/entities"
)

// Column layout of the OpenFlights airports table. Column 12 (type) is not read.
const (
	colID = iota
	colName
	colCity
	colCountry
	colIATA
	colICAO
	colLatitude
	colLongitude
	colAltitude
	colTimezone
	colDST
	colTZ
	colType
	colSource

	columnCount
)

// nullMarker is how OpenFlights writes a missing value.
const nullMarker = `\N`

// ErrDatasetLoad wraps every failure to read or parse the source table.
var ErrDatasetLoad = errors.New("airport dataset load failed")

// ParseError reports a row that could not be converted to an Airport.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AirportReader is the read-only view of the dataset used by the service layer.
type AirportReader interface {
	// GetAll returns every airport in source order. The slice is shared and must not be modified.
	GetAll() ([]entities.Airport, error)
	// GetByID returns nil, nil when no airport has the given id.
	GetByID(id int) (*entities.Airport, error)
}

// AirportRepository loads the airports table once, on first access, and keeps
// it for the lifetime of the process.
type AirportRepository struct {
	source string
	open   func() (io.ReadCloser, error)

	once     sync.Once
	loads    atomic.Int32
	airports []entities.Airport
	byID     map[int]int
	err      error
}

// Ensure AirportRepository implements AirportReader
var _ AirportReader = (*AirportRepository)(nil)

// NewAirportRepository creates a repository reading the CSV file at path.
func NewAirportRepository(path string) *AirportRepository {
	return &AirportRepository{
		source: path,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// NewAirportRepositoryFromReader creates a repository over an in-memory table.
func NewAirportRepositoryFromReader(name string, r io.Reader) *AirportRepository {
	return &AirportRepository{
		source: name,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}

// Load forces the one-time load and returns its result. Concurrent callers
// block until the first load completes and all observe the same outcome.
func (r *AirportRepository) Load() error {
	r.once.Do(func() {
		r.loads.Add(1)
		r.airports, r.err = r.read()
		if r.err != nil {
			r.airports = nil
			return
		}
		r.byID = make(map[int]int, len(r.airports))
		for i, a := range r.airports {
			r.byID[a.ID] = i
		}
	})
	return r.err
}

// Source names where the table is read from.
func (r *AirportRepository) Source() string {
	return r.source
}

func (r *AirportRepository) GetAll() ([]entities.Airport, error) {
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r.airports, nil
}

func (r *AirportRepository) GetByID(id int) (*entities.Airport, error) {
	if err := r.Load(); err != nil {
		return nil, err
	}

	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}

	airport := r.airports[i]
	return &airport, nil
}

// Count returns the number of loaded airports.
func (r *AirportRepository) Count() (int, error) {
	all, err := r.GetAll()
	return len(all), err
}

func (r *AirportRepository) read() ([]entities.Airport, error) {
	rc, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrDatasetLoad, r.source, err)
	}
	defer rc.Close()

	airports, err := ParseAirports(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetLoad, r.source, err)
	}
	return airports, nil
}

// ParseAirports reads an OpenFlights airports table. The first row is a header
// and is discarded. Commas inside double quoted fields do not split the field.
func ParseAirports(r io.Reader) ([]entities.Airport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Skip header, whatever its width
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	reader.FieldsPerRecord = columnCount

	var airports []entities.Airport
	seen := make(map[int]int)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		airport, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[airport.ID]; dup {
			return nil, &ParseError{Line: line, Column: "id", Err: fmt.Errorf("duplicate id %d, first seen on line %d", airport.ID, first)}
		}
		seen[airport.ID] = line
		airports = append(airports, airport)
	}

	return airports, nil
}

func parseRecord(record []string, line int) (entities.Airport, error) {
	id, err := strconv.Atoi(strings.TrimSpace(record[colID]))
	if err != nil {
		return entities.Airport{}, &ParseError{Line: line, Column: "id", Err: err}
	}
	if id < 1 {
		return entities.Airport{}, &ParseError{Line: line, Column: "id", Err: fmt.Errorf("id must be positive, got %d", id)}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[colLatitude]), 64)
	if err != nil {
		return entities.Airport{}, &ParseError{Line: line, Column: "latitude", Err: err}
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(record[colLongitude]), 64)
	if err != nil {
		return entities.Airport{}, &ParseError{Line: line, Column: "longitude", Err: err}
	}

	alt, err := strconv.Atoi(strings.TrimSpace(record[colAltitude]))
	if err != nil {
		return entities.Airport{}, &ParseError{Line: line, Column: "altitude", Err: err}
	}

	return entities.Airport{
		ID:        id,
		Name:      text(record[colName]),
		City:      text(record[colCity]),
		Country:   text(record[colCountry]),
		IATA:      text(record[colIATA]),
		ICAO:      text(record[colICAO]),
		Latitude:  lat,
		Longitude: lon,
		Altitude:  alt,
		Timezone:  text(record[colTimezone]),
		DST:       text(record[colDST]),
		TZ:        text(record[colTZ]),
		Source:    text(record[colSource]),
	}, nil
}

func text(field string) string {
	if field == nullMarker {
		return ""
	}
	return field
}
