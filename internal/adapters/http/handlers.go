package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
	"minebench/internal/core/ports"
	"minebench/pkg/utils"
)

const maxRecordsLimit = 1000

type Handler struct {
	benchmarkSvc ports.BenchmarkService
	downloadSvc  ports.DownloadService
}

// NewHandler constructs a handler that depends on the service interfaces.
func NewHandler(benchmarkSvc ports.BenchmarkService, downloadSvc ports.DownloadService) *Handler {
	return &Handler{benchmarkSvc: benchmarkSvc, downloadSvc: downloadSvc}
}

// writeError maps core errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, coreerrors.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: err.Error()})
	case errors.Is(err, coreerrors.ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Msg: "benchmark source unavailable"})
	case errors.Is(err, coreerrors.ErrDeviceNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Msg: "device not found"})
	case errors.Is(err, coreerrors.ErrSnapshotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Msg: "no snapshot available"})
	default:
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Msg: "internal error"})
	}
}

func bindTableQuery(c *gin.Context) (domain.Query, bool) {
	var tq TableQuery
	if err := c.ShouldBindQuery(&tq); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "invalid query: " + err.Error()})
		return domain.Query{}, false
	}
	return tq.ToDomain(), true
}

// GetBenchmarks godoc
// @Summary List recent benchmarks
// @Description Normalized benchmark records, newest first.
// @Tags benchmarks
// @Produce json
// @Param limit query int false "Maximum rows (default 50, max 1000)"
// @Success 200 {object} BenchmarksResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/benchmarks [get]
func (h *Handler) GetBenchmarks(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecordsLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "limit must be between 1 and 1000"})
			return
		}
		limit = n
	}

	records, err := h.benchmarkSvc.Records(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BenchmarksResponse{Count: len(records), Rows: toRows(records)})
}

// ExportBenchmarks godoc
// @Summary Export the benchmark table as CSV
// @Description Latest run per device, filtered and sorted like the dashboard table.
// @Tags benchmarks
// @Produce text/csv
// @Param algorithm query string false "Algorithm"
// @Param device_name query string false "Device name"
// @Param device_type query string false "Device type"
// @Param search query string false "Free-text search"
// @Param sort query string false "Sort field"
// @Param order query string false "asc or desc"
// @Success 200 {string} string "csv"
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/benchmarks/export.csv [get]
func (h *Handler) ExportBenchmarks(c *gin.Context) {
	q, ok := bindTableQuery(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	n, err := h.benchmarkSvc.ExportCSV(c.Request.Context(), q, &buf)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="minebench-benchmarks.csv"`)
	c.Header("X-Total-Count", strconv.Itoa(n))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetDashboard godoc
// @Summary Leaderboard dashboard
// @Description Latest run per device with the leaderboard summary and filter values.
// @Tags dashboard
// @Produce json
// @Param algorithm query string false "Algorithm"
// @Param device_name query string false "Device name"
// @Param device_type query string false "Device type"
// @Param search query string false "Free-text search"
// @Param sort query string false "Sort field"
// @Param order query string false "asc or desc"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	q, ok := bindTableQuery(c)
	if !ok {
		return
	}

	view, err := h.benchmarkSvc.Dashboard(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDashboardResponse(view))
}

// RefreshDashboard godoc
// @Summary Recompute the dashboard snapshot
// @Description Results that finish after a newer refresh are returned with applied=false.
// @Tags dashboard
// @Produce json
// @Param sort query string false "Sort field"
// @Param order query string false "asc or desc"
// @Success 200 {object} RefreshResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/dashboard/refresh [post]
func (h *Handler) RefreshDashboard(c *gin.Context) {
	q, ok := bindTableQuery(c)
	if !ok {
		return
	}

	snap, applied, err := h.benchmarkSvc.Refresh(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{Applied: applied, Snapshot: toSnapshotResponse(snap)})
}

// GetSnapshot godoc
// @Summary Current dashboard snapshot
// @Tags dashboard
// @Produce json
// @Success 200 {object} SnapshotResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/dashboard/snapshot [get]
func (h *Handler) GetSnapshot(c *gin.Context) {
	snap, err := h.benchmarkSvc.CurrentSnapshot()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// ListDevices godoc
// @Summary Per-device aggregates
// @Description Every run of a device folded into one duration-weighted summary.
// @Tags devices
// @Produce json
// @Param group_by query string false "device_uid (default) or device_name"
// @Success 200 {object} DevicesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/devices [get]
func (h *Handler) ListDevices(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", domain.FieldDeviceUID)

	var key domain.GroupKey
	switch groupBy {
	case domain.FieldDeviceUID:
		key = domain.ByDeviceUID
	case domain.FieldDeviceName:
		key = domain.ByDeviceName
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "group_by must be device_uid or device_name"})
		return
	}

	summaries, err := h.benchmarkSvc.Devices(c.Request.Context(), key)
	if err != nil {
		writeError(c, err)
		return
	}

	devices := make([]DeviceResponse, len(summaries))
	for i, s := range summaries {
		devices[i] = toDeviceResponse(s)
	}
	c.JSON(http.StatusOK, DevicesResponse{GroupBy: groupBy, Count: len(devices), Devices: devices})
}

// GetDevice godoc
// @Summary Aggregate for one device
// @Tags devices
// @Produce json
// @Param device_uid path string true "Device UID"
// @Success 200 {object} DeviceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/devices/{device_uid} [get]
func (h *Handler) GetDevice(c *gin.Context) {
	uid := c.Param("device_uid")

	if !utils.IsDeviceUID(uid) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "Invalid device UID"})
		return
	}

	summary, err := h.benchmarkSvc.Device(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDeviceResponse(*summary))
}

// GetStats godoc
// @Summary Landing page counters
// @Tags stats
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.benchmarkSvc.LandingStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Benchmarks:    stats.Benchmarks,
		ActiveDevices: stats.ActiveDevices,
		Downloads:     stats.Downloads,
	})
}

// GetDownloads godoc
// @Summary Latest miner releases
// @Description When any lookup fails the whole view is reported unavailable.
// @Tags downloads
// @Produce json
// @Success 200 {object} DownloadsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/downloads [get]
func (h *Handler) GetDownloads(c *gin.Context) {
	downloads, err := h.downloadSvc.Downloads(c.Request.Context())
	if err != nil {
		if errors.Is(err, coreerrors.ErrSourceUnavailable) {
			c.JSON(http.StatusOK, DownloadsResponse{Available: false, Downloads: []domain.Download{}})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DownloadsResponse{Available: true, Downloads: downloads})
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
