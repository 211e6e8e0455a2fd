package repositories

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const testHeader = "Airport ID,Name,City,Country,IATA,ICAO,Latitude,Longitude,Altitude,Timezone,DST,Tz database time zone,Type,Source\n"

func TestAirportRepository_GetAll_LoadsFixtureInOrder(t *testing.T) {
	repo := NewAirportRepository(filepath.Join("testdata", "airports.csv"))

	airports, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(airports) != 20 {
		t.Fatalf("Expected 20 airports, got %d", len(airports))
	}

	for i, a := range airports {
		if a.ID != i+1 {
			t.Errorf("Expected airport %d to have ID %d, got %d", i, i+1, a.ID)
		}
	}

	goroka := airports[0]
	if goroka.Name != "Goroka Airport" || goroka.City != "Goroka" || goroka.Country != "Papua New Guinea" {
		t.Errorf("Unexpected text fields: %+v", goroka)
	}
	if goroka.IATA != "GKA" || goroka.ICAO != "AYGA" {
		t.Errorf("Unexpected codes: %s/%s", goroka.IATA, goroka.ICAO)
	}
	if goroka.Latitude != -6.081689835 || goroka.Longitude != 145.3919983 {
		t.Errorf("Unexpected coordinates: %f,%f", goroka.Latitude, goroka.Longitude)
	}
	if goroka.Altitude != 5282 {
		t.Errorf("Expected altitude 5282, got %d", goroka.Altitude)
	}
	if goroka.Timezone != "10" || goroka.DST != "U" || goroka.TZ != "Pacific/Port_Moresby" {
		t.Errorf("Unexpected time zone fields: %+v", goroka)
	}
	if goroka.Source != "OurAirports" {
		t.Errorf("Expected source OurAirports, got %s", goroka.Source)
	}

	if airports[11].Name != "Egilsstaðir Airport" {
		t.Errorf("Expected UTF-8 name to survive, got %q", airports[11].Name)
	}
}

func TestAirportRepository_GetAll_ReturnsCachedSlice(t *testing.T) {
	repo := NewAirportRepository(filepath.Join("testdata", "airports.csv"))

	first, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if &first[0] != &second[0] {
		t.Error("Expected the same cached slice on every call")
	}
	if repo.loads.Load() != 1 {
		t.Errorf("Expected 1 load, got %d", repo.loads.Load())
	}
}

func TestAirportRepository_ConcurrentFirstAccess_LoadsOnce(t *testing.T) {
	repo := NewAirportRepository(filepath.Join("testdata", "airports.csv"))

	var wg sync.WaitGroup
	counts := make([]int, 32)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			all, err := repo.GetAll()
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
				return
			}
			counts[i] = len(all)
		}(i)
	}
	wg.Wait()

	for i, c := range counts {
		if c != 20 {
			t.Errorf("Goroutine %d saw %d airports", i, c)
		}
	}
	if repo.loads.Load() != 1 {
		t.Errorf("Expected 1 load, got %d", repo.loads.Load())
	}
}

func TestAirportRepository_GetByID(t *testing.T) {
	repo := NewAirportRepository(filepath.Join("testdata", "airports.csv"))

	airport, err := repo.GetByID(18)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if airport == nil || airport.ID != 18 || airport.ICAO != "BIRK" {
		t.Fatalf("Expected Reykjavik airport, got %+v", airport)
	}

	missing, err := repo.GetByID(100)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown id, got %+v", missing)
	}
}

func TestAirportRepository_MissingFile_IsLoadError(t *testing.T) {
	repo := NewAirportRepository(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := repo.GetAll()
	if !errors.Is(err, ErrDatasetLoad) {
		t.Fatalf("Expected ErrDatasetLoad, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}

	if _, err := repo.GetByID(1); !errors.Is(err, ErrDatasetLoad) {
		t.Errorf("Expected the load error to be sticky, got %v", err)
	}
}

func TestParseAirports_QuotedFieldWithComma(t *testing.T) {
	table := testHeader +
		`1,"Washington Dulles International Airport","Washington, D.C.","United States","IAD","KIAD",38.94449997,-77.45580292,312,-5,"A","America/New_York","airport","OurAirports"` + "\n"

	airports, err := ParseAirports(strings.NewReader(table))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(airports) != 1 {
		t.Fatalf("Expected 1 airport, got %d", len(airports))
	}
	if airports[0].City != "Washington, D.C." {
		t.Errorf("Expected quoted comma to stay in the field, got %q", airports[0].City)
	}
	if airports[0].Source != "OurAirports" {
		t.Errorf("Expected source from column 13, got %q", airports[0].Source)
	}
}

func TestParseAirports_NullMarkerAndBlankLines(t *testing.T) {
	table := testHeader +
		`5674,"Ilulissat Airport","Ilulissat","Greenland",\N,"BGJN",69.2432022095,-51.0570983887,95,-3,"E","America/Godthab","airport","OurAirports"` + "\n\n\n"

	airports, err := ParseAirports(strings.NewReader(table))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(airports) != 1 {
		t.Fatalf("Expected 1 airport, got %d", len(airports))
	}
	if airports[0].IATA != "" {
		t.Errorf("Expected empty IATA, got %q", airports[0].IATA)
	}
}

func TestParseAirports_Errors(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"bad id", "x,A,B,C,AAA,AAAA,1,2,3,0,N,UTC,airport,Test", "id"},
		{"zero id", "0,A,B,C,AAA,AAAA,1,2,3,0,N,UTC,airport,Test", "id"},
		{"bad latitude", "1,A,B,C,AAA,AAAA,north,2,3,0,N,UTC,airport,Test", "latitude"},
		{"bad longitude", "1,A,B,C,AAA,AAAA,1,east,3,0,N,UTC,airport,Test", "longitude"},
		{"bad altitude", "1,A,B,C,AAA,AAAA,1,2,high,0,N,UTC,airport,Test", "altitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAirports(strings.NewReader(testHeader + tt.row + "\n"))

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected ParseError, got %v", err)
			}
			if pe.Column != tt.column {
				t.Errorf("Expected column %s, got %s", tt.column, pe.Column)
			}
			if pe.Line != 2 {
				t.Errorf("Expected line 2, got %d", pe.Line)
			}
		})
	}
}

func TestParseAirports_WrongColumnCount(t *testing.T) {
	_, err := ParseAirports(strings.NewReader(testHeader + "1,A,B,C\n"))
	if err == nil {
		t.Fatal("Expected error for short row")
	}
}

func TestParseAirports_HeaderWidthIgnored(t *testing.T) {
	row := "7,Test Field,Testville,Nowhere,TST,XTST,10,20,30,0,N,UTC,airport,User\n"

	for _, header := range []string{"header\n", "a,b,c\n", testHeader[:len(testHeader)-1] + ",extra\n"} {
		airports, err := ParseAirports(strings.NewReader(header + row))
		if err != nil {
			t.Fatalf("Expected header %q to be skipped, got %v", header, err)
		}
		if len(airports) != 1 || airports[0].ID != 7 {
			t.Errorf("Expected the single data row, got %+v", airports)
		}
	}
}

func TestParseAirports_DuplicateID(t *testing.T) {
	row := "1,A,B,C,AAA,AAAA,1,2,3,0,N,UTC,airport,Test\n"
	_, err := ParseAirports(strings.NewReader(testHeader + row + row))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if pe.Line != 3 {
		t.Errorf("Expected duplicate reported on line 3, got %d", pe.Line)
	}
}

func TestParseAirports_EmptyInput(t *testing.T) {
	if _, err := ParseAirports(strings.NewReader("")); err == nil {
		t.Fatal("Expected error for missing header")
	}

	airports, err := ParseAirports(strings.NewReader(testHeader))
	if err != nil {
		t.Fatalf("Expected header-only table to load, got %v", err)
	}
	if len(airports) != 0 {
		t.Errorf("Expected 0 airports, got %d", len(airports))
	}
}

func TestNewAirportRepositoryFromReader(t *testing.T) {
	row := "42,Test Field,Testville,Nowhere,TST,XTST,10,20,30,1.5,N,UTC,airport,User\n"
	repo := NewAirportRepositoryFromReader("inline", strings.NewReader(testHeader+row))

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 airport, got %d", count)
	}

	a, _ := repo.GetByID(42)
	if a == nil || a.Timezone != "1.5" {
		t.Errorf("Expected fractional timezone to be kept as text, got %+v", a)
	}
	if repo.Source() != "inline" {
		t.Errorf("Expected source name inline, got %s", repo.Source())
	}
}
