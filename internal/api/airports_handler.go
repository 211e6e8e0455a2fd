package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vikare/airports/internal/common"
	"vikare/airports/internal/constants"
	"vikare/airports/internal/geo"
	"vikare/airports/internal/logging"
	"vikare/airports/internal/metrics"
	"vikare/airports/internal/middleware"
	"vikare/airports/internal/models/dtos"
	"vikare/airports/internal/services"
)

// AirportsHandler exposes the airport queries over HTTP
type AirportsHandler struct {
	svc     services.AirportService
	metrics *metrics.MetricsRegistry
}

func NewAirportsHandler(svc services.AirportService, metricsReg *metrics.MetricsRegistry) *AirportsHandler {
	return &AirportsHandler{svc: svc, metrics: metricsReg}
}

// ListAirports handles GET /api/airports
//
// @Summary      List airports
// @Description  Returns a page of airports, optionally filtered by name, city or country.
// @Tags         Airports
// @Produce      json
// @Param        page             query  int     false  "Page number"              default(1)
// @Param        pageSize         query  int     false  "Page size, at most 50"    default(10)
// @Param        search           query  string  false  "Case-insensitive substring"
// @Param        excludeMetadata  query  bool    false  "Omit pagination metadata" default(false)
// @Success      200  {object}  dtos.AirportListResult
// @Failure      500  {object}  dtos.APIResponse
// @Router       /api/airports [get]
func (h *AirportsHandler) ListAirports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		params := dtos.NewListParams(
			queryInt(q.Get("page")),
			queryInt(q.Get("pageSize")),
			queryString(q, "search"),
			queryBool(q.Get("excludeMetadata")),
		)

		result, err := h.svc.ListAirports(params)
		if err != nil {
			h.internalError(w, r, initTime, err)
			return
		}

		h.observe("list", len(result.Data))
		common.RespondJSON(w, http.StatusOK, result)
	}
}

// GetAirport handles GET /api/airports/{id}
//
// @Summary      Get an airport
// @Description  Returns the airport with the given OpenFlights id, or 204 when none exists.
// @Tags         Airports
// @Produce      json
// @Param        id   path      int  true  "Airport id"
// @Success      200  {object}  entities.Airport
// @Success      204  "No airport with that id"
// @Failure      500  {object}  dtos.APIResponse
// @Router       /api/airports/{id} [get]
func (h *AirportsHandler) GetAirport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			common.RespondNoContent(w)
			return
		}

		airport, err := h.svc.GetAirport(id)
		if errors.Is(err, services.ErrAirportNotFound) {
			common.RespondNoContent(w)
			return
		}
		if err != nil {
			h.internalError(w, r, initTime, err)
			return
		}

		common.RespondJSON(w, http.StatusOK, airport)
	}
}

// AirportsByDistance handles GET /api/airports/closest and /api/airports/farthest
//
// @Summary      Rank airports by distance
// @Description  Returns the closest or farthest airports from a coordinate.
// @Tags         Airports
// @Produce      json
// @Param        lat     query  number  true   "Latitude"
// @Param        lng     query  number  true   "Longitude"
// @Param        count   query  int     false  "Number of airports, at most 50"  default(10)
// @Param        unit    query  string  false  "k, m or n"                      default(k)
// @Param        format  query  string  false  "json or geojson"                default(json)
// @Success      200  {array}   entities.AirportDistance
// @Failure      400  {object}  dtos.APIResponse
// @Failure      500  {object}  dtos.APIResponse
// @Router       /api/airports/closest [get]
// @Router       /api/airports/farthest [get]
func (h *AirportsHandler) AirportsByDistance(direction constants.Direction) http.HandlerFunc {
	queryName := "closest"
	if direction == constants.DirectionFarthest {
		queryName = "farthest"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		lat, ok := queryCoordinate(q.Get("lat"))
		if !ok {
			common.RespondError(w, initTime, nil, constants.MsgInvalidLatitude, http.StatusBadRequest)
			return
		}
		lng, ok := queryCoordinate(q.Get("lng"))
		if !ok {
			common.RespondError(w, initTime, nil, constants.MsgInvalidLongitude, http.StatusBadRequest)
			return
		}

		params := dtos.NewDistanceParams(direction, lat, lng, queryInt(q.Get("count")), queryString(q, "unit"))

		airports, err := h.svc.AirportsByDistance(params)
		if err != nil {
			h.internalError(w, r, initTime, err)
			return
		}

		h.observe(queryName, len(airports))

		switch responseFormat(q.Get("format")) {
		case constants.FormatGeoJSON:
			w.Header().Set("Content-Type", "application/geo+json")
			common.RespondJSON(w, http.StatusOK, geo.FeatureCollection(lat, lng, params.Unit, airports))
		case constants.FormatJSON:
			common.RespondJSON(w, http.StatusOK, airports)
		}
	}
}

// responseFormat falls back to plain JSON for anything but geojson.
func responseFormat(raw string) constants.ResponseFormat {
	if strings.EqualFold(strings.TrimSpace(raw), string(constants.FormatGeoJSON)) {
		return constants.FormatGeoJSON
	}
	return constants.FormatJSON
}

func (h *AirportsHandler) observe(query string, size int) {
	if h.metrics != nil {
		h.metrics.QueryResultSize.WithLabelValues(query).Observe(float64(size))
	}
}

func (h *AirportsHandler) internalError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	logging.WithRequest(middleware.GetRequestID(r.Context()), r.URL.Path).
		Errorw("Airport query failed", "error", err.Error())
	common.RespondError(w, initTime, nil, constants.MsgInternalError, http.StatusInternalServerError)
}

// queryInt returns nil when the value is absent or not an integer.
func queryInt(raw string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}

func queryBool(raw string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}

func queryString(q map[string][]string, key string) *string {
	vals, ok := q[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func queryCoordinate(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
