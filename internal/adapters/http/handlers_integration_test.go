package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minebench/internal/adapters/metrics"
	"minebench/internal/adapters/repository/memory"
	"minebench/internal/adapters/source/csvfile"
	"minebench/internal/core/domain"
	"minebench/internal/core/services"
)

// staticReleases serves a fixed release for every repository.
type staticReleases struct{}

func (staticReleases) LatestRelease(_ context.Context, repo string) (domain.ReleaseInfo, error) {
	return domain.ReleaseInfo{
		TagName: "v2.0.0",
		Assets: []domain.ReleaseAsset{
			{Name: "notes.txt", DownloadURL: "https://dl/" + repo + "/notes.txt"},
			{Name: "miner.exe", DownloadURL: "https://dl/" + repo + "/miner.exe"},
		},
	}, nil
}

const integrationCSV = `id,device_uid,device_name,device_type,algorithm,coin_name,avg_hashrate,max_hashrate,avg_temp,avg_power,duration_seconds,created_at
1,cpu-aa,Ryzen 9 7950X,CPU,RandomX,ZEPH,18000,18500,71.5,140,600,2025-01-01T10:00:00Z
2,cpu-aa,Ryzen 9 7950X,CPU,RandomX,ZEPH,20000,21000,72.0,150,1200,2025-01-02T10:00:00Z
3,gpu-bb,RTX 3060,GPU,KawPow,RVN,25000000,26000000,,125,900,2025-01-03T10:00:00Z
5,gpu-cc,RX 6600,GPU,KawPow,RVN,not-a-number,,,,,2025-01-05T10:00:00Z
`

// newIntegrationServer wires the CSV source, real services, the memory
// snapshot repository and real routes together into a Gin engine.
func newIntegrationServer(t *testing.T, content string) (*gin.Engine, *memory.SnapshotRepository) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "benchmarks.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	repo := memory.NewSnapshotRepository()
	m := metrics.NewPrometheusMetrics()
	benchSvc := services.NewBenchmarkService(csvfile.NewSource(path), repo, m, services.Options{SourceName: "csv"})
	dlSvc := services.NewDownloadService(staticReleases{}, []services.ReleaseTarget{
		{Product: "MineBench CPU", Repository: "karbivskyi/MineBench-CPU-ZEPH"},
		{Product: "MineBench GPU", Repository: "karbivskyi/MineBench-GPU-RVN"},
	}, nil, m)

	r := gin.New()
	RegisterRoutes(r, benchSvc, dlSvc, m)

	return r, repo
}

func getJSON(t *testing.T, r *gin.Engine, method, target string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestIntegration_Dashboard_LatestPerDevice(t *testing.T) {
	r, _ := newIntegrationServer(t, integrationCSV)

	var resp DashboardResponse
	code := getJSON(t, r, http.MethodGet, "/api/v1/dashboard", &resp)

	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Summary)
	// cpu-aa collapses to its newest run and the malformed row is dropped.
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Summary.TotalTests)
	assert.Equal(t, "gpu-bb", resp.Summary.BestPerformer.DeviceUID)

	var ids []string
	for _, row := range resp.Rows {
		ids = append(ids, row.ID)
	}
	assert.Equal(t, []string{"3", "2"}, ids)
	assert.Equal(t, []string{"KawPow", "RandomX"}, resp.Options.Algorithms)
}

func TestIntegration_Dashboard_FilterAndSort(t *testing.T) {
	r, _ := newIntegrationServer(t, integrationCSV)

	var resp DashboardResponse
	code := getJSON(t, r, http.MethodGet, "/api/v1/dashboard?sort=avg_hashrate&order=asc", &resp)

	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "2", resp.Rows[0].ID)
	assert.Equal(t, "3", resp.Rows[1].ID)

	code = getJSON(t, r, http.MethodGet, "/api/v1/dashboard?device_type=CPU", &resp)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "2", resp.Rows[0].ID)
	// totals describe the unfiltered set
	assert.Equal(t, 2, resp.Total)
}

func TestIntegration_Dashboard_EmptySourceIsNoData(t *testing.T) {
	r, _ := newIntegrationServer(t, "id,device_uid,avg_hashrate,created_at\n")

	var resp DashboardResponse
	code := getJSON(t, r, http.MethodGet, "/api/v1/dashboard", &resp)

	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.NoData)
	assert.Nil(t, resp.Summary)
	assert.Empty(t, resp.Rows)
}

func TestIntegration_Dashboard_MissingFileIs503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := services.NewBenchmarkService(csvfile.NewSource(filepath.Join(t.TempDir(), "missing.csv")), memory.NewSnapshotRepository(), nil, services.Options{})
	r := gin.New()
	RegisterRoutes(r, svc, services.NewDownloadService(staticReleases{}, nil, nil, nil), nil)

	code := getJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil)

	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestIntegration_Devices_Aggregate(t *testing.T) {
	r, _ := newIntegrationServer(t, integrationCSV)

	var device DeviceResponse
	code := getJSON(t, r, http.MethodGet, "/api/v1/devices/cpu-aa", &device)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, device.Runs)
	// (18000*600 + 20000*1200) / 1800
	assert.InDelta(t, 19333.33, device.Record.AvgHashrate, 0.01)
	assert.Equal(t, 21000.0, device.Record.MaxHashrate)

	code = getJSON(t, r, http.MethodGet, "/api/v1/devices/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestIntegration_Stats(t *testing.T) {
	r, _ := newIntegrationServer(t, integrationCSV)

	var stats StatsResponse
	code := getJSON(t, r, http.MethodGet, "/api/v1/stats", &stats)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, stats.Benchmarks)
	assert.Equal(t, 2, stats.ActiveDevices)
}

func TestIntegration_RefreshThenSnapshot(t *testing.T) {
	r, repo := newIntegrationServer(t, integrationCSV)

	code := getJSON(t, r, http.MethodGet, "/api/v1/dashboard/snapshot", nil)
	require.Equal(t, http.StatusNotFound, code)

	var first, second RefreshResponse
	require.Equal(t, http.StatusOK, getJSON(t, r, http.MethodPost, "/api/v1/dashboard/refresh", &first))
	require.Equal(t, http.StatusOK, getJSON(t, r, http.MethodPost, "/api/v1/dashboard/refresh", &second))
	assert.True(t, first.Applied)
	assert.True(t, second.Applied)
	assert.Greater(t, second.Snapshot.Generation, first.Snapshot.Generation)

	var current SnapshotResponse
	require.Equal(t, http.StatusOK, getJSON(t, r, http.MethodGet, "/api/v1/dashboard/snapshot", &current))
	assert.Equal(t, second.Snapshot.ID, current.ID)
	assert.Equal(t, 1, repo.Count())
}

func TestIntegration_ExportCSV(t *testing.T) {
	r, _ := newIntegrationServer(t, integrationCSV)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/benchmarks/export.csv?algorithm=RandomX", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, services.CSVHeader, rows[0])
	assert.Equal(t, "cpu-aa", rows[1][1])
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
}

func TestIntegration_Downloads(t *testing.T) {
	r, _ := newIntegrationServer(t, integrationCSV)

	var resp DownloadsResponse
	code := getJSON(t, r, http.MethodGet, "/api/v1/downloads", &resp)

	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.Available)
	require.Len(t, resp.Downloads, 2)
	require.NotNil(t, resp.Downloads[0].URL)
	assert.Equal(t, "https://dl/karbivskyi/MineBench-CPU-ZEPH/miner.exe", *resp.Downloads[0].URL)
}

func TestIntegration_MetricsEndpoint(t *testing.T) {
	r, _ := newIntegrationServer(t, integrationCSV)

	getJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil)

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `minebench_records_dropped_total{source="csv"} 1`)
	assert.Contains(t, w.Body.String(), `route="/api/v1/dashboard"`)
}
