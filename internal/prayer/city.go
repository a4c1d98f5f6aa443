package prayer

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultCity = "Dhaka"

// Cities are the supported city selections.
var Cities = []string{"Dhaka", "Chattogram", "Rajshahi", "Khulna", "Sylhet"}

// upstreamNames maps a city to the name the prayer-time API knows it by.
var upstreamNames = map[string]string{
	"Chattogram": "Chittagong",
}

// NormalizeCity matches name case-insensitively against Cities. Unknown or
// empty names resolve to DefaultCity.
func NormalizeCity(name string) string {
	trimmed := strings.TrimSpace(name)
	for _, city := range Cities {
		if strings.EqualFold(city, trimmed) {
			return city
		}
		if upstream, ok := upstreamNames[city]; ok && strings.EqualFold(upstream, trimmed) {
			return city
		}
	}
	return DefaultCity
}

func UpstreamName(city string) string {
	if name, ok := upstreamNames[city]; ok {
		return name
	}
	return city
}

//go:embed fallback.yaml
var fallbackFS embed.FS

type fallbackEntry struct {
	Sehri   string  `yaml:"sehri"`
	Iftar   string  `yaml:"iftar"`
	Timings Timings `yaml:"timings"`
}

var fallbackTable = mustLoadFallback()

func mustLoadFallback() map[string]fallbackEntry {
	data, err := fallbackFS.ReadFile("fallback.yaml")
	if err != nil {
		panic(fmt.Sprintf("prayer: read fallback table: %v", err))
	}

	table := map[string]fallbackEntry{}
	err = yaml.Unmarshal(data, &table)
	if err != nil {
		panic(fmt.Sprintf("prayer: parse fallback table: %v", err))
	}

	for _, city := range Cities {
		if _, ok := table[city]; !ok {
			panic("prayer: fallback table missing city " + city)
		}
	}

	return table
}

// Fallback returns the static schedule for city on date.
func Fallback(city, date string) Schedule {
	city = NormalizeCity(city)
	entry := fallbackTable[city]

	return Schedule{
		City:    city,
		Date:    date,
		Sehri:   NormalizeTime(entry.Sehri),
		Iftar:   NormalizeTime(entry.Iftar),
		Source:  SourceFallback,
		Timings: entry.Timings.Normalized(),
	}
}
