package errors

import "errors"

var (
	// ErrSourceUnavailable is returned when the benchmark store or the release
	// API cannot be reached or answers with a non-success status.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedRecord classifies a single raw record that failed normalization.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrEmptyDataset is returned by aggregate operations that are undefined on
	// empty input.
	ErrEmptyDataset = errors.New("empty dataset")

	ErrInvalidQuery     = errors.New("invalid query")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
