package models

// RefreshResult reports the outcome of a manual data refresh.
type RefreshResult struct {
	Status       string `json:"status"`
	TotalRecords int    `json:"total_records"`
	LastUpdated  string `json:"last_updated"`
}

// SourceStatus describes one upstream dataset held by the service.
type SourceStatus struct {
	Name        string `json:"name"`
	Records     int64  `json:"records"`
	LastUpdated string `json:"last_updated"`
}

// ServiceStatus is the payload for the status endpoint.
type ServiceStatus struct {
	Status        string         `json:"status"`
	Env           string         `json:"env"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Sources       []SourceStatus `json:"sources"`
}
