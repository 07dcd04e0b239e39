package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
)

// Source serves benchmark rows from a CSV export of the benchmarks table.
// The file is re-read on every Fetch so each call sees a fresh snapshot.
type Source struct {
	path string
}

// NewSource creates a Source reading from path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Fetch loads the file. Expected format: a header line naming the columns,
// then one benchmark per line. Empty cells become nulls.
func (s *Source) Fetch(ctx context.Context, limit int) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrSourceUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", coreerrors.ErrSourceUnavailable, s.path, err)
	}
	if len(records) == 0 {
		return []domain.RawRecord{}, nil
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]domain.RawRecord, 0, len(records)-1)
	for _, line := range records[1:] {
		if len(line) == 0 || (len(line) == 1 && strings.TrimSpace(line[0]) == "") {
			continue
		}
		row := make(domain.RawRecord, len(header))
		for i, col := range header {
			if i >= len(line) || line[i] == "" {
				row[col] = nil
				continue
			}
			row[col] = line[i]
		}
		rows = append(rows, row)
	}

	sortNewestFirst(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// sortNewestFirst orders rows by created_at descending. Rows whose timestamp
// does not parse keep their relative order at the end; the normalizer
// reports them.
func sortNewestFirst(rows []domain.RawRecord) {
	stamps := make([]time.Time, len(rows))
	valid := make([]bool, len(rows))
	for i, r := range rows {
		ts, err := domain.ParseTimestamp(r[domain.FieldCreatedAt])
		stamps[i], valid[i] = ts, err == nil
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if valid[i] != valid[j] {
			return valid[i]
		}
		return stamps[i].After(stamps[j])
	})

	sorted := make([]domain.RawRecord, len(rows))
	for k, i := range idx {
		sorted[k] = rows[i]
	}
	copy(rows, sorted)
}
