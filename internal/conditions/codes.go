// Package conditions translates WMO synoptic weather codes into labels.
package conditions

// Unknown is returned for codes missing from the table.
const Unknown = "Unknown"

var labels = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// LabelFor returns the human-readable label for a weather code.
func LabelFor(code int) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return Unknown
}

// Codes returns every code present in the table.
func Codes() []int {
	codes := make([]int, 0, len(labels))
	for code := range labels {
		codes = append(codes, code)
	}
	return codes
}
