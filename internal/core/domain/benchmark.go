package domain

import "time"

// RawRecord is one benchmark row as delivered by a source, before any typing.
type RawRecord map[string]any

// BenchmarkRecord is one completed benchmark run on one device.
type BenchmarkRecord struct {
	ID              string    `json:"id"`
	DeviceUID       string    `json:"device_uid"`
	DeviceName      string    `json:"device_name"`
	DeviceType      string    `json:"device_type"`
	Algorithm       string    `json:"algorithm"`
	CoinName        string    `json:"coin_name"`
	AvgHashrate     float64   `json:"avg_hashrate"`
	MaxHashrate     float64   `json:"max_hashrate"`
	AvgTemp         *float64  `json:"avg_temp"`
	AvgPower        *float64  `json:"avg_power"`
	DurationSeconds float64   `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// Efficiency returns hashes per Watt. ok is false when power is missing or
// not positive.
func (r BenchmarkRecord) Efficiency() (eff float64, ok bool) {
	if r.AvgPower == nil || *r.AvgPower <= 0 {
		return 0, false
	}
	return r.AvgHashrate / *r.AvgPower, true
}

// DeviceSummary is the single entry a device collapses to after grouping.
type DeviceSummary struct {
	Key    string          `json:"key"`
	Runs   int             `json:"runs"`
	Record BenchmarkRecord `json:"record"`
}

// Records unwraps the summaries so they can be ranked, filtered and sorted.
func Records(summaries []DeviceSummary) []BenchmarkRecord {
	out := make([]BenchmarkRecord, len(summaries))
	for i, s := range summaries {
		out[i] = s.Record
	}
	return out
}

// LeaderboardSummary is the whole-dataset rollup shown above the table.
type LeaderboardSummary struct {
	TotalTests        int               `json:"total_tests"`
	AverageHashrate   float64           `json:"average_hashrate"`
	AverageEfficiency float64           `json:"average_efficiency"`
	BestPerformer     BenchmarkRecord   `json:"best_performer"`
	RecentTests       []BenchmarkRecord `json:"recent_tests"`
}

// LandingStats are the headline counters of the landing page.
type LandingStats struct {
	Benchmarks    int `json:"benchmarks"`
	ActiveDevices int `json:"active_devices"`
	Downloads     int `json:"downloads"`
}

// CountActiveDevices counts distinct non-empty device uids.
func CountActiveDevices(records []BenchmarkRecord) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.DeviceUID == "" {
			continue
		}
		seen[r.DeviceUID] = struct{}{}
	}
	return len(seen)
}
