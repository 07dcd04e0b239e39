package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	coreerrors "minebench/internal/core/errors"
)

// Column names of the benchmarks collection.
const (
	FieldID              = "id"
	FieldDeviceUID       = "device_uid"
	FieldDeviceName      = "device_name"
	FieldDeviceType      = "device_type"
	FieldAlgorithm       = "algorithm"
	FieldCoinName        = "coin_name"
	FieldAvgHashrate     = "avg_hashrate"
	FieldMaxHashrate     = "max_hashrate"
	FieldAvgTemp         = "avg_temp"
	FieldAvgPower        = "avg_power"
	FieldDurationSeconds = "duration_seconds"
	FieldCreatedAt       = "created_at"
)

// knownFields is the schema accepted at the normalization boundary. The
// trailing entries are columns the store carries that the pipeline ignores.
var knownFields = map[string]bool{
	FieldID:              true,
	FieldDeviceUID:       true,
	FieldDeviceName:      true,
	FieldDeviceType:      true,
	FieldAlgorithm:       true,
	FieldCoinName:        true,
	FieldAvgHashrate:     true,
	FieldMaxHashrate:     true,
	FieldAvgTemp:         true,
	FieldAvgPower:        true,
	FieldDurationSeconds: true,
	FieldCreatedAt:       true,
	"efficiency":         true,
	"gpu_model":          true,
	"_id":                true,
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
}

// NormalizeOptions tunes how strictly raw rows are checked.
type NormalizeOptions struct {
	// Strict rejects rows that carry columns outside the known schema.
	Strict bool
}

// RecordError describes one dropped row.
type RecordError struct {
	Index int
	ID    string
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d (id=%q): %v", e.Index, e.ID, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// NormalizeReport lists what the normalizer dropped or flagged.
type NormalizeReport struct {
	Dropped       []RecordError
	UnknownFields []string
}

// Normalize maps raw rows into BenchmarkRecords, preserving input order.
// Rows that cannot be normalized are skipped and reported; they never fail
// the batch.
func Normalize(raw []RawRecord, opts NormalizeOptions) ([]BenchmarkRecord, NormalizeReport) {
	var report NormalizeReport
	unknown := make(map[string]struct{})
	out := make([]BenchmarkRecord, 0, len(raw))

	for i, row := range raw {
		extra := unknownColumns(row)
		for _, k := range extra {
			unknown[k] = struct{}{}
		}
		if opts.Strict && len(extra) > 0 {
			report.Dropped = append(report.Dropped, RecordError{
				Index: i,
				ID:    stringField(row, FieldID),
				Err:   fmt.Errorf("%w: unknown fields %v", coreerrors.ErrMalformedRecord, extra),
			})
			continue
		}

		rec, err := NormalizeRecord(row)
		if err != nil {
			report.Dropped = append(report.Dropped, RecordError{Index: i, ID: stringField(row, FieldID), Err: err})
			continue
		}
		out = append(out, rec)
	}

	for k := range unknown {
		report.UnknownFields = append(report.UnknownFields, k)
	}
	sort.Strings(report.UnknownFields)
	return out, report
}

// NormalizeRecord converts a single raw row. The returned error wraps
// ErrMalformedRecord.
func NormalizeRecord(row RawRecord) (BenchmarkRecord, error) {
	var rec BenchmarkRecord

	uid, ok := row[FieldDeviceUID]
	if !ok || uid == nil {
		return rec, malformed("missing %s", FieldDeviceUID)
	}
	rec.DeviceUID = strings.TrimSpace(toString(uid))

	hashrate, present, err := toFloat(row[FieldAvgHashrate])
	if err != nil {
		return rec, malformed("%s: %v", FieldAvgHashrate, err)
	}
	if !present {
		return rec, malformed("missing %s", FieldAvgHashrate)
	}
	if hashrate < 0 {
		return rec, malformed("%s is negative", FieldAvgHashrate)
	}
	rec.AvgHashrate = hashrate

	createdAt, err := ParseTimestamp(row[FieldCreatedAt])
	if err != nil {
		return rec, malformed("%s: %v", FieldCreatedAt, err)
	}
	rec.CreatedAt = createdAt

	maxHashrate, present, err := toFloat(row[FieldMaxHashrate])
	if err != nil {
		return rec, malformed("%s: %v", FieldMaxHashrate, err)
	}
	if !present {
		maxHashrate = hashrate
	}
	if maxHashrate < 0 {
		return rec, malformed("%s is negative", FieldMaxHashrate)
	}
	rec.MaxHashrate = maxHashrate

	if rec.AvgTemp, err = optionalFloat(row, FieldAvgTemp); err != nil {
		return rec, err
	}
	if rec.AvgPower, err = optionalFloat(row, FieldAvgPower); err != nil {
		return rec, err
	}

	duration, _, err := toFloat(row[FieldDurationSeconds])
	if err != nil {
		return rec, malformed("%s: %v", FieldDurationSeconds, err)
	}
	if duration < 0 {
		return rec, malformed("%s is negative", FieldDurationSeconds)
	}
	rec.DurationSeconds = duration

	rec.ID = stringField(row, FieldID)
	rec.DeviceName = stringField(row, FieldDeviceName)
	rec.DeviceType = stringField(row, FieldDeviceType)
	rec.Algorithm = stringField(row, FieldAlgorithm)
	rec.CoinName = stringField(row, FieldCoinName)

	return rec, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", coreerrors.ErrMalformedRecord, fmt.Sprintf(format, args...))
}

func unknownColumns(row RawRecord) []string {
	var extra []string
	for k := range row {
		if !knownFields[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return extra
}

func optionalFloat(row RawRecord, field string) (*float64, error) {
	v, present, err := toFloat(row[field])
	if err != nil {
		return nil, malformed("%s: %v", field, err)
	}
	if !present {
		return nil, nil
	}
	return &v, nil
}

func stringField(row RawRecord, field string) string {
	v, ok := row[field]
	if !ok || v == nil {
		return ""
	}
	return toString(v)
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// toFloat reports present=false for nil, absent and blank values.
func toFloat(v any) (f float64, present bool, err error) {
	switch t := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		f, err = t.Float64()
	case string:
		s := strings.TrimSpace(t)
		if s == "" || strings.EqualFold(s, "null") {
			return 0, false, nil
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		return 0, false, fmt.Errorf("unsupported type %T", v)
	}
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("not a finite number")
	}
	return f, true, nil
}

// ParseTimestamp accepts time.Time values and the string layouts the store
// emits, returning UTC.
func ParseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("missing")
	case time.Time:
		if t.IsZero() {
			return time.Time{}, fmt.Errorf("zero timestamp")
		}
		return t.UTC(), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, fmt.Errorf("missing")
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
	default:
		return time.Time{}, fmt.Errorf("unsupported type %T", v)
	}
}
