package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
)

const (
	defaultTable    = "benchmarks"
	defaultPageSize = 1000
)

// Source queries the benchmarks table through the store's PostgREST API.
type Source struct {
	baseURL  string
	apiKey   string
	table    string
	pageSize int
	client   *http.Client
}

// Option customizes a Source.
type Option func(*Source)

func WithTable(table string) Option {
	return func(s *Source) { s.table = table }
}

// WithPageSize sets how many rows are requested per round trip when the
// caller asks for an unbounded result.
func WithPageSize(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

// NewSource creates a Source for the project at baseURL authenticated with apiKey.
func NewSource(baseURL, apiKey string, opts ...Option) *Source {
	s := &Source{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		table:    defaultTable,
		pageSize: defaultPageSize,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch selects every column ordered by created_at descending. With
// limit <= 0 it pages through the whole table.
func (s *Source) Fetch(ctx context.Context, limit int) ([]domain.RawRecord, error) {
	if limit > 0 && limit <= s.pageSize {
		return s.page(ctx, 0, limit)
	}

	var all []domain.RawRecord
	for offset := 0; ; offset += s.pageSize {
		size := s.pageSize
		if limit > 0 && limit-len(all) < size {
			size = limit - len(all)
		}
		rows, err := s.page(ctx, offset, size)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(rows) < size || (limit > 0 && len(all) >= limit) {
			break
		}
	}
	if all == nil {
		all = []domain.RawRecord{}
	}
	return all, nil
}

func (s *Source) page(ctx context.Context, offset, limit int) ([]domain.RawRecord, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", s.baseURL, url.PathEscape(s.table), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: store returned %d: %s", coreerrors.ErrSourceUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", coreerrors.ErrSourceUnavailable, err)
	}

	out := make([]domain.RawRecord, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}
