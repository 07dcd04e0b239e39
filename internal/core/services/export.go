package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"minebench/internal/core/domain"
)

// CSVHeader is the fixed header row of a table export.
var CSVHeader = []string{
	"Created At", "Device UID", "Device Name", "Device Type", "Algorithm", "Coin",
	"Avg Hashrate (H/s)", "Max Hashrate (H/s)", "Power (W)", "Efficiency (H/W)",
	"Temperature (°C)", "Duration (s)",
}

// WriteCSV renders one row per record. Missing measurements are left empty.
func WriteCSV(w io.Writer, records []domain.BenchmarkRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, r := range records {
		eff, ok := r.Efficiency()
		effCell := ""
		if ok {
			effCell = fixed(eff, 2)
		}
		row := []string{
			r.CreatedAt.Format(time.RFC3339),
			r.DeviceUID,
			r.DeviceName,
			r.DeviceType,
			r.Algorithm,
			r.CoinName,
			fixed(r.AvgHashrate, 2),
			fixed(r.MaxHashrate, 2),
			optional(r.AvgPower, 0),
			effCell,
			optional(r.AvgTemp, 1),
			fixed(r.DurationSeconds, 0),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func optional(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return fixed(*v, prec)
}
