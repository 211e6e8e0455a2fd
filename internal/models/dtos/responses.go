package dtos

import "vikare/airports/internal/models/entities"

// AirportListResult is one page of airports. Metadata is nil when the caller
// asked to exclude it.
type AirportListResult struct {
	Metadata *AirportListMetadata `json:"metadata,omitempty"`
	Data     []entities.Airport   `json:"data"`
}

type AirportListMetadata struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// APIResponse is the envelope used for error bodies.
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}
