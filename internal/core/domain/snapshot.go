package domain

import "time"

// DashboardView is everything the dashboard renders from one fetch.
type DashboardView struct {
	Summary *LeaderboardSummary `json:"summary"`
	NoData  bool                `json:"no_data"`
	Rows    []BenchmarkRecord   `json:"rows"`
	Total   int                 `json:"total"`
	Options FilterOptions       `json:"filter_options"`
}

// FilterOptions are the dropdown values of the table filters.
type FilterOptions struct {
	Algorithms  []string `json:"algorithms"`
	DeviceNames []string `json:"device_names"`
	DeviceTypes []string `json:"device_types"`
}

// NewFilterOptions collects dropdown values from the unfiltered rows.
func NewFilterOptions(records []BenchmarkRecord) FilterOptions {
	return FilterOptions{
		Algorithms:  DistinctValues(records, FieldAlgorithm),
		DeviceNames: DistinctValues(records, FieldDeviceName),
		DeviceTypes: DistinctValues(records, FieldDeviceType),
	}
}

// Snapshot is a computed view tagged with the refresh generation that
// produced it. Snapshots are never mutated after creation.
type Snapshot struct {
	ID         string        `json:"id"`
	View       string        `json:"view"`
	Generation uint64        `json:"generation"`
	ComputedAt time.Time     `json:"computed_at"`
	Dashboard  DashboardView `json:"dashboard"`
}
