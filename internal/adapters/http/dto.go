package http

import (
	"time"

	"minebench/internal/core/domain"
	"minebench/pkg/utils"
)

type ErrorResponse struct {
	Msg string `json:"msg"`
}

// TableQuery carries the filter and sort parameters of the benchmark table.
type TableQuery struct {
	Algorithm  string `form:"algorithm"`
	DeviceName string `form:"device_name"`
	DeviceType string `form:"device_type"`
	Search     string `form:"search"`
	Sort       string `form:"sort"`
	Order      string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// ToDomain fills in the default newest-first ordering.
func (q TableQuery) ToDomain() domain.Query {
	out := domain.DefaultQuery()
	out.Algorithm = q.Algorithm
	out.DeviceName = q.DeviceName
	out.DeviceType = q.DeviceType
	out.Search = q.Search
	if q.Sort != "" {
		out.SortField = q.Sort
	}
	if q.Order != "" {
		out.SortDir = domain.SortDirection(q.Order)
	}
	return out
}

// RowDisplay holds the human readable renderings of a row.
type RowDisplay struct {
	Hashrate    string `json:"hashrate"`
	MaxHashrate string `json:"max_hashrate"`
	Efficiency  string `json:"efficiency"`
	Power       string `json:"power"`
	Temperature string `json:"temperature"`
	Duration    string `json:"duration"`
}

type BenchmarkRow struct {
	domain.BenchmarkRecord
	Efficiency *float64   `json:"efficiency"`
	Display    RowDisplay `json:"display"`
}

func toRow(r domain.BenchmarkRecord) BenchmarkRow {
	row := BenchmarkRow{BenchmarkRecord: r}
	if eff, ok := r.Efficiency(); ok {
		row.Efficiency = &eff
	}
	row.Display = RowDisplay{
		Hashrate:    utils.FormatHashrate(r.AvgHashrate),
		MaxHashrate: utils.FormatHashrate(r.MaxHashrate),
		Efficiency:  utils.FormatEfficiency(row.Efficiency),
		Power:       "N/A",
		Temperature: "N/A",
		Duration:    utils.FormatUptime(r.DurationSeconds),
	}
	if r.AvgPower != nil {
		row.Display.Power = utils.FormatPower(*r.AvgPower)
	}
	if r.AvgTemp != nil {
		row.Display.Temperature = utils.FormatTemperature(*r.AvgTemp)
	}
	return row
}

func toRows(records []domain.BenchmarkRecord) []BenchmarkRow {
	rows := make([]BenchmarkRow, len(records))
	for i, r := range records {
		rows[i] = toRow(r)
	}
	return rows
}

type SummaryResponse struct {
	TotalTests        int            `json:"total_tests"`
	AverageHashrate   float64        `json:"average_hashrate"`
	AverageEfficiency float64        `json:"average_efficiency"`
	BestPerformer     BenchmarkRow   `json:"best_performer"`
	RecentTests       []BenchmarkRow `json:"recent_tests"`
}

type DashboardResponse struct {
	NoData  bool                 `json:"no_data"`
	Summary *SummaryResponse     `json:"summary"`
	Total   int                  `json:"total"`
	Count   int                  `json:"count"`
	Rows    []BenchmarkRow       `json:"rows"`
	Options domain.FilterOptions `json:"filter_options"`
}

func toDashboardResponse(v *domain.DashboardView) DashboardResponse {
	resp := DashboardResponse{
		NoData:  v.NoData,
		Total:   v.Total,
		Count:   len(v.Rows),
		Rows:    toRows(v.Rows),
		Options: v.Options,
	}
	if v.Summary != nil {
		resp.Summary = &SummaryResponse{
			TotalTests:        v.Summary.TotalTests,
			AverageHashrate:   v.Summary.AverageHashrate,
			AverageEfficiency: v.Summary.AverageEfficiency,
			BestPerformer:     toRow(v.Summary.BestPerformer),
			RecentTests:       toRows(v.Summary.RecentTests),
		}
	}
	return resp
}

type SnapshotResponse struct {
	ID         string            `json:"id"`
	Generation uint64            `json:"generation"`
	ComputedAt time.Time         `json:"computed_at"`
	Dashboard  DashboardResponse `json:"dashboard"`
}

func toSnapshotResponse(s *domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:         s.ID,
		Generation: s.Generation,
		ComputedAt: s.ComputedAt,
		Dashboard:  toDashboardResponse(&s.Dashboard),
	}
}

type RefreshResponse struct {
	Applied  bool             `json:"applied"`
	Snapshot SnapshotResponse `json:"snapshot"`
}

type BenchmarksResponse struct {
	Count int            `json:"count"`
	Rows  []BenchmarkRow `json:"rows"`
}

type DeviceResponse struct {
	Key    string       `json:"key"`
	Runs   int          `json:"runs"`
	Record BenchmarkRow `json:"record"`
}

func toDeviceResponse(s domain.DeviceSummary) DeviceResponse {
	return DeviceResponse{Key: s.Key, Runs: s.Runs, Record: toRow(s.Record)}
}

type DevicesResponse struct {
	GroupBy string           `json:"group_by"`
	Count   int              `json:"count"`
	Devices []DeviceResponse `json:"devices"`
}

type StatsResponse struct {
	Benchmarks    int `json:"benchmarks"`
	ActiveDevices int `json:"active_devices"`
	Downloads     int `json:"downloads"`
}

// DownloadsResponse reports Available=false with no entries when any
// release lookup failed.
type DownloadsResponse struct {
	Available bool              `json:"available"`
	Downloads []domain.Download `json:"downloads"`
}
