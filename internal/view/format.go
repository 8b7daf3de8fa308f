package view

import (
	"fmt"
	"math"
	"time"
)

// NotAvailable replaces any individually missing value.
const NotAvailable = "N/A"

const (
	dayLabelLayout = "Jan 2"
	ClockLayout    = "Monday, January 2, 2006 15:04:05"
)

// Round rounds halves toward positive infinity: 2.5 becomes 3 and -2.5
// becomes -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func FormatTemperature(c float64) string {
	return fmt.Sprintf("%d", Round(c))
}

// FormatDayTemperature is FormatTemperature for a daily value the API may
// have left null.
func FormatDayTemperature(c *float64) string {
	if c == nil {
		return NotAvailable
	}
	return FormatTemperature(*c)
}

func FormatHumidity(pct float64) string {
	return fmt.Sprintf("%d%%", Round(pct))
}

func FormatWindSpeed(kmh *float64) string {
	if kmh == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%d km/h", Round(*kmh))
}

func FormatPressure(hpa *float64) string {
	if hpa == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%d hPa", Round(*hpa))
}

// FormatMeters renders a height to one decimal place.
func FormatMeters(m *float64) string {
	if m == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f m", *m)
}

func FormatSeaTemperature(c *float64) string {
	if c == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%d°C", Round(*c))
}

func FormatDayLabel(d time.Time) string {
	return d.Format(dayLabelLayout)
}
