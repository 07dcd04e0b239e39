package domain

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	coreerrors "minebench/internal/core/errors"
)

// SortDirection is the direction of a table sort.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// FieldEfficiency is a derived sortable column.
const FieldEfficiency = "efficiency"

// Query describes the table view: equality filters, a free-text search and a
// single-field sort.
type Query struct {
	Algorithm  string
	DeviceName string
	DeviceType string
	Search     string
	SortField  string
	SortDir    SortDirection
}

// DefaultQuery sorts newest first, like the dashboard table.
func DefaultQuery() Query {
	return Query{SortField: FieldCreatedAt, SortDir: Desc}
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindTime
)

type sortField struct {
	kind   fieldKind
	str    func(BenchmarkRecord) string
	number func(BenchmarkRecord) (float64, bool)
}

func present(v float64) (float64, bool) { return v, true }

func nullable(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

var sortFields = map[string]sortField{
	FieldCreatedAt:       {kind: kindTime},
	FieldID:              {kind: kindString, str: func(r BenchmarkRecord) string { return r.ID }},
	FieldDeviceUID:       {kind: kindString, str: func(r BenchmarkRecord) string { return r.DeviceUID }},
	FieldDeviceName:      {kind: kindString, str: func(r BenchmarkRecord) string { return r.DeviceName }},
	FieldDeviceType:      {kind: kindString, str: func(r BenchmarkRecord) string { return r.DeviceType }},
	FieldAlgorithm:       {kind: kindString, str: func(r BenchmarkRecord) string { return r.Algorithm }},
	FieldCoinName:        {kind: kindString, str: func(r BenchmarkRecord) string { return r.CoinName }},
	FieldAvgHashrate:     {kind: kindNumber, number: func(r BenchmarkRecord) (float64, bool) { return present(r.AvgHashrate) }},
	FieldMaxHashrate:     {kind: kindNumber, number: func(r BenchmarkRecord) (float64, bool) { return present(r.MaxHashrate) }},
	FieldDurationSeconds: {kind: kindNumber, number: func(r BenchmarkRecord) (float64, bool) { return present(r.DurationSeconds) }},
	FieldAvgTemp:         {kind: kindNumber, number: func(r BenchmarkRecord) (float64, bool) { return nullable(r.AvgTemp) }},
	FieldAvgPower:        {kind: kindNumber, number: func(r BenchmarkRecord) (float64, bool) { return nullable(r.AvgPower) }},
	FieldEfficiency:      {kind: kindNumber, number: BenchmarkRecord.Efficiency},
}

// Validate checks the sort field and direction.
func (q Query) Validate() error {
	if q.SortField != "" {
		if _, ok := sortFields[q.SortField]; !ok {
			return fmt.Errorf("%w: unknown sort field %q", coreerrors.ErrInvalidQuery, q.SortField)
		}
	}
	switch q.SortDir {
	case "", Asc, Desc:
	default:
		return fmt.Errorf("%w: unknown sort direction %q", coreerrors.ErrInvalidQuery, q.SortDir)
	}
	return nil
}

// Apply filters then sorts a copy of records.
func Apply(records []BenchmarkRecord, q Query) ([]BenchmarkRecord, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	out := Filter(records, q)
	Sort(out, q.SortField, q.SortDir)
	return out, nil
}

// Filter keeps records matching every equality filter and, when a search term
// is set, containing it case-insensitively in any searchable column.
func Filter(records []BenchmarkRecord, q Query) []BenchmarkRecord {
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(q.Search))

	out := make([]BenchmarkRecord, 0, len(records))
	for _, r := range records {
		if q.Algorithm != "" && r.Algorithm != q.Algorithm {
			continue
		}
		if q.DeviceName != "" && r.DeviceName != q.DeviceName {
			continue
		}
		if q.DeviceType != "" && r.DeviceType != q.DeviceType {
			continue
		}
		if term != "" && !matches(fold, term, r.Algorithm, r.DeviceName, r.DeviceType, r.CoinName) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(fold cases.Caser, term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold.String(f), term) {
			return true
		}
	}
	return false
}

// Sort orders records in place by one field. Missing values go last in either
// direction; ties keep their relative order. An empty field leaves records
// untouched.
func Sort(records []BenchmarkRecord, field string, dir SortDirection) {
	f, ok := sortFields[field]
	if !ok {
		return
	}
	desc := dir == Desc

	switch f.kind {
	case kindTime:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i].CreatedAt, records[j].CreatedAt
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		})
	case kindString:
		col := collate.New(language.English)
		sort.SliceStable(records, func(i, j int) bool {
			c := col.CompareString(f.str(records[i]), f.str(records[j]))
			if desc {
				return c > 0
			}
			return c < 0
		})
	case kindNumber:
		sort.SliceStable(records, func(i, j int) bool {
			a, okA := f.number(records[i])
			b, okB := f.number(records[j])
			switch {
			case !okA || !okB:
				return okA && !okB
			case desc:
				return a > b
			default:
				return a < b
			}
		})
	}
}

// DistinctValues returns the sorted unique non-empty values of a string
// column, for filter dropdowns.
func DistinctValues(records []BenchmarkRecord, field string) []string {
	f, ok := sortFields[field]
	if !ok || f.kind != kindString {
		return []string{}
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		v := f.str(r)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
