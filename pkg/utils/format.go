package utils

import (
	"fmt"
	"math"
)

var hashrateUnits = []struct {
	scale float64
	unit  string
}{
	{1e12, "TH/s"},
	{1e9, "GH/s"},
	{1e6, "MH/s"},
	{1e3, "KH/s"},
}

func FormatHashrate(h float64) string {
	for _, u := range hashrateUnits {
		if h >= u.scale {
			return fmt.Sprintf("%.2f %s", h/u.scale, u.unit)
		}
	}
	return fmt.Sprintf("%.2f H/s", h)
}

var efficiencyUnits = []string{"H/W", "kH/W", "MH/W", "GH/W", "TH/W"}

// FormatEfficiency scales by thousands. A nil or NaN value renders as "N/A".
func FormatEfficiency(eff *float64) string {
	if eff == nil || math.IsNaN(*eff) {
		return "N/A"
	}
	v, i := *eff, 0
	for v >= 1000 && i < len(efficiencyUnits)-1 {
		v /= 1000
		i++
	}
	return fmt.Sprintf("%.2f %s", v, efficiencyUnits[i])
}

func FormatPower(w float64) string {
	return fmt.Sprintf("%.0fW", w)
}

func FormatTemperature(c float64) string {
	return fmt.Sprintf("%.1f°C", c)
}

// FormatUptime renders seconds as "Xh Ym".
func FormatUptime(seconds float64) string {
	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Floor(math.Mod(seconds, 3600) / 60))
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
