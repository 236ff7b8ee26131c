// internal/pipeline/normalize.go
// Field normalizer: dates, locale decimals and status labels.
package pipeline

import (
	"strconv"
	"strings"
	"time"
)

// Layouts tried by the generic fallback when a date string carries neither
// "/" nor "-". The source systems occasionally export textual dates.
var genericDateLayouts = []string{
	time.RFC3339,
	"20060102",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate resolves the date encodings seen across the source corpus into a
// canonical calendar date. Rules, first match wins:
//
//  1. contains "/": three tokens read as day/month/year (the corpus is
//     day-first; never month/day/year)
//  2. contains "-": three tokens; a 4-char first token means year-month-day,
//     anything else day-month-year
//  3. otherwise a generic parse over a small layout list
//
// The second return is false for anything that does not land on a real
// calendar date: wrong token count, non-numeric parts, 31/02, etc. Callers
// must keep such rows in category totals and drop them from time buckets.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	switch {
	case strings.Contains(s, "/"):
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return time.Time{}, false
		}
		return dateFromParts(parts[0], parts[1], parts[2])
	case strings.Contains(s, "-"):
		parts := strings.Split(s, "-")
		if len(parts) != 3 {
			return time.Time{}, false
		}
		if len(parts[0]) == 4 {
			return dateFromParts(parts[2], parts[1], parts[0])
		}
		return dateFromParts(parts[0], parts[1], parts[2])
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateFromParts builds a date from day/month/year strings and rejects
// rollovers (time.Date would happily turn 31/02 into 2 or 3 March).
func dateFromParts(dayS, monthS, yearS string) (time.Time, bool) {
	day, err := strconv.Atoi(strings.TrimSpace(dayS))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthS))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearS))
	if err != nil {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ParseDecimal turns a locale-formatted money/criticality string into a
// float64. Surrounding quotes and currency symbols are stripped, a comma
// decimal separator becomes a period, and when both separators appear the
// period is treated as the thousands marker ("1.234,56" -> 1234.56).
// Absent or unparseable values are 0 so that cost totals are always
// sum(material) + sum(labor) with no divergence between consumers.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	if s == "" {
		return 0
	}

	if strings.Contains(s, ",") {
		// comma is the decimal separator; any period is thousands noise
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// statusAliases maps source labels (including the pt-BR vocabulary of the
// legacy exports) onto the canonical status values. Keys are lower case.
var statusAliases = map[string]Status{
	"notstarted":   StatusNotStarted,
	"not started":  StatusNotStarted,
	"não iniciada": StatusNotStarted,
	"nao iniciada": StatusNotStarted,
	"requested":    StatusRequested,
	"requisitada":  StatusRequested,
	"started":      StatusStarted,
	"iniciada":     StatusStarted,
	"released":     StatusReleased,
	"liberada":     StatusReleased,
	"suspended":    StatusSuspended,
	"suspensa":     StatusSuspended,
}

// ParseStatus maps a raw state label to the fixed vocabulary. Unknown or
// missing values default to NotStarted.
func ParseStatus(s string) Status {
	if st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st
	}
	return StatusNotStarted
}

// ParseTypeCode extracts the integer maintenance-type code. ok is false when
// the field is absent or not a number.
func ParseTypeCode(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	// some exports hand codes through a float cell ("7.0")
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

// ParseCriticality reads a criticality value when it is numeric (ordinal
// scales like 1..5). Free labels are not parseable and return ok=false;
// they still participate in the criticality breakdown as labels.
func ParseCriticality(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != '-' && r != '+' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
