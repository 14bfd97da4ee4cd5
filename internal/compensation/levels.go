package compensation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/autoreply/internal/types"
)

// DefaultLevelsBaseURL serves per-title compensation JSON.
const DefaultLevelsBaseURL = "https://www.levels.fyi/js/titles/"

const (
	minCandidateComp = 1000
	minUsableComp    = 5000
	maxUsableComp    = 1e8
)

// compFields are checked in order on object entries.
var compFields = []string{
	"totalyearlycompensation",
	"total_compensation",
	"totalCompensation",
	"tc",
	"total",
	"compensation",
	"salary",
}

var entryContainers = []string{"data", "levels", "entries"}

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// LevelsURL builds the title URL for a role.
func LevelsURL(baseURL string, role types.RoleCategory) string {
	if baseURL == "" {
		baseURL = DefaultLevelsBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + url.PathEscape(string(role)) + ".json"
}

// ParseLevels computes quartiles from a titles payload, filtering entries by
// location unless it is the generic default. It fails on unparseable payloads,
// empty entry lists, or when no value is usable.
func ParseLevels(payload []byte, location types.LocationCategory) (Percentiles, bool) {
	var data any
	if err := json.Unmarshal(payload, &data); err != nil {
		return Percentiles{}, false
	}

	entries := levelEntries(data)
	if len(entries) == 0 {
		return Percentiles{}, false
	}

	selected := filterByLocation(entries, location)
	if len(selected) == 0 {
		selected = entries
	}

	usable := make([]float64, 0, len(selected))
	for _, entry := range selected {
		if v, ok := compValue(entry); ok && isFinite(v) && v > minUsableComp && v <= maxUsableComp {
			usable = append(usable, v)
		}
	}
	if len(usable) == 0 {
		return Percentiles{}, false
	}

	sort.Float64s(usable)
	p25, _ := Percentile(usable, 0.25)
	p50, _ := Percentile(usable, 0.5)
	p75, _ := Percentile(usable, 0.75)
	return Percentiles{P25: p25, P50: p50, P75: p75}, true
}

func levelEntries(data any) []any {
	switch v := data.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range entryContainers {
			if arr, ok := v[key].([]any); ok {
				return arr
			}
		}
	}
	return nil
}

func filterByLocation(entries []any, location types.LocationCategory) []any {
	if location == "" || location == types.DefaultLocation {
		return nil
	}

	needle := strings.ToLower(string(location))
	var matches []any
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entryLocation(entry)), needle) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func entryLocation(entry any) string {
	switch v := entry.(type) {
	case map[string]any:
		if s, ok := v["location"].(string); ok {
			return s
		}
		if s, ok := v["city"].(string); ok {
			return s
		}
	case []any:
		if len(v) > 1 {
			return fmt.Sprint(v[1])
		}
	}
	return ""
}

// compValue returns a bare number as-is, otherwise the first field that
// reads as a figure above minCandidateComp.
func compValue(entry any) (float64, bool) {
	var candidates []any
	switch v := entry.(type) {
	case float64:
		return v, true
	case map[string]any:
		for _, field := range compFields {
			candidates = append(candidates, v[field])
		}
	case []any:
		if len(v) > 0 {
			candidates = append(candidates, v[len(v)-1])
		}
	default:
		return 0, false
	}

	for _, c := range candidates {
		n, ok := numeric(c)
		if ok && isFinite(n) && n > minCandidateComp {
			return n, true
		}
	}
	return 0, false
}

// numeric reads a JSON number or a string with currency formatting stripped.
func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		digits := nonNumeric.ReplaceAllString(t, "")
		if digits == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(digits, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
