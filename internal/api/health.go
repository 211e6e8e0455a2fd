package api

import (
	"net/http"
	"time"

	"vikare/airports/internal/common"
	"vikare/airports/internal/models/entities"
)

// DatasetStatus is the part of the repository the health check needs.
type DatasetStatus interface {
	Count() (int, error)
	Source() string
}

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the server is running and the airport dataset is loaded.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Failure 503 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(dataset DatasetStatus, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		// Check dataset
		status := "ok"
		details := ""
		count, err := dataset.Count()
		if err != nil {
			status = "down"
			details = "Airport dataset unavailable"
		} else {
			details = dataset.Source()
		}
		services["dataset"] = entities.ServiceStatus{
			Status:  status,
			Details: details,
			Records: count,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   uptime,
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		common.RespondJSON(w, code, resp)
	}
}
