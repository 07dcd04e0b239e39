package domain

import (
	"sort"

	coreerrors "minebench/internal/core/errors"
)

// DefaultRecentTests is how many entries a leaderboard lists as recent.
const DefaultRecentTests = 10

func CountRecords(records []BenchmarkRecord) int {
	return len(records)
}

// AverageHashrate is the arithmetic mean of avg_hashrate.
func AverageHashrate(records []BenchmarkRecord) (float64, error) {
	if len(records) == 0 {
		return 0, coreerrors.ErrEmptyDataset
	}
	var sum float64
	for _, r := range records {
		sum += r.AvgHashrate
	}
	return sum / float64(len(records)), nil
}

// AverageEfficiency averages hashrate/power over records with positive power
// and positive hashrate. It is exactly 0 when no record qualifies.
func AverageEfficiency(records []BenchmarkRecord) float64 {
	var sum float64
	var n int
	for _, r := range records {
		if r.AvgHashrate <= 0 {
			continue
		}
		eff, ok := r.Efficiency()
		if !ok {
			continue
		}
		sum += eff
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// BestPerformer returns the record with the highest avg_hashrate. The first
// of several equal maxima wins.
func BestPerformer(records []BenchmarkRecord) (BenchmarkRecord, error) {
	if len(records) == 0 {
		return BenchmarkRecord{}, coreerrors.ErrEmptyDataset
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.AvgHashrate > best.AvgHashrate {
			best = r
		}
	}
	return best, nil
}

// RecentEntries returns up to n records, newest first. Records sharing a
// timestamp keep their input order. The input is not modified.
func RecentEntries(records []BenchmarkRecord, n int) []BenchmarkRecord {
	if n <= 0 || len(records) == 0 {
		return []BenchmarkRecord{}
	}
	sorted := make([]BenchmarkRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Summarize builds the leaderboard rollup. Empty input yields ErrEmptyDataset
// so callers can render a "no data" state instead.
func Summarize(records []BenchmarkRecord, recentN int) (LeaderboardSummary, error) {
	avg, err := AverageHashrate(records)
	if err != nil {
		return LeaderboardSummary{}, err
	}
	best, err := BestPerformer(records)
	if err != nil {
		return LeaderboardSummary{}, err
	}
	return LeaderboardSummary{
		TotalTests:        CountRecords(records),
		AverageHashrate:   avg,
		AverageEfficiency: AverageEfficiency(records),
		BestPerformer:     best,
		RecentTests:       RecentEntries(records, recentN),
	}, nil
}
