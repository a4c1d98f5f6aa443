package prayer

import (
	"strconv"
	"strings"
)

const (
	SourceUpstream = "aladhan.com"
	SourceFallback = "fallback"
)

// Names are the five daily prayers in order, as they appear in goal titles.
var Names = [5]string{"ফজর", "যোহর", "আসর", "মাগরিব", "ইশা"}

// Timings holds the five daily prayer clock times as "HH:MM".
type Timings struct {
	Fajr    string `json:"Fajr" yaml:"fajr"`
	Dhuhr   string `json:"Dhuhr" yaml:"dhuhr"`
	Asr     string `json:"Asr" yaml:"asr"`
	Maghrib string `json:"Maghrib" yaml:"maghrib"`
	Isha    string `json:"Isha" yaml:"isha"`
}

// Ordered returns the timings as Fajr..Isha.
func (t Timings) Ordered() [5]string {
	return [5]string{t.Fajr, t.Dhuhr, t.Asr, t.Maghrib, t.Isha}
}

// Normalized returns a copy with every time passed through NormalizeTime.
func (t Timings) Normalized() Timings {
	return Timings{
		Fajr:    NormalizeTime(t.Fajr),
		Dhuhr:   NormalizeTime(t.Dhuhr),
		Asr:     NormalizeTime(t.Asr),
		Maghrib: NormalizeTime(t.Maghrib),
		Isha:    NormalizeTime(t.Isha),
	}
}

// Schedule is one city-day resolved by the prayer service.
type Schedule struct {
	City    string  `json:"city"`
	Date    string  `json:"date"`
	Sehri   string  `json:"sehri"`
	Iftar   string  `json:"iftar"`
	Source  string  `json:"source"`
	Timings Timings `json:"timings"`
}

// NormalizeTime keeps the leading "HH:MM" token of an upstream value such as
// "05:02 (+06)". Anything else becomes "00:00".
func NormalizeTime(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return "00:00"
	}

	hh, mm, ok := splitClock(fields[0])
	if !ok {
		return "00:00"
	}

	return pad2(hh) + ":" + pad2(mm)
}

// Minutes converts "HH:MM" to minutes since midnight. Malformed input yields 0.
func Minutes(hhmm string) int {
	hh, mm, ok := splitClock(strings.TrimSpace(hhmm))
	if !ok {
		return 0
	}
	return hh*60 + mm
}

func splitClock(s string) (int, int, bool) {
	hPart, mPart, found := strings.Cut(s, ":")
	if !found || len(hPart) == 0 || len(hPart) > 2 || len(mPart) != 2 {
		return 0, 0, false
	}

	hh, err := strconv.Atoi(hPart)
	if err != nil || hh < 0 || hh > 23 {
		return 0, 0, false
	}

	mm, err := strconv.Atoi(mPart)
	if err != nil || mm < 0 || mm > 59 {
		return 0, 0, false
	}

	return hh, mm, true
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
