package compensation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/autoreply/internal/types"
)

// DefaultGlassdoorBaseURL is the salary search root.
const DefaultGlassdoorBaseURL = "https://www.glassdoor.com/Salaries/"

const maxKeywordLength = 28

var (
	slugSeparators   = regexp.MustCompile(`[^a-z0-9]+`)
	percentileObject = regexp.MustCompile(`"payPercentileSalary":\s*(\{[^}]+\})`)
)

// Slugify lower-cases and collapses non-alphanumerics to single dashes.
func Slugify(value string) string {
	slug := slugSeparators.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(slug, "-")
}

// GlassdoorURL builds the salary search URL for a role and, when resolved, a location.
func GlassdoorURL(baseURL string, role types.RoleCategory, location types.LocationCategory) string {
	if baseURL == "" {
		baseURL = DefaultGlassdoorBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	roleSlug := Slugify(string(role))
	if location != "" && location != types.DefaultLocation {
		return baseURL + Slugify(string(location)) + "-" + roleSlug + "-salary-SRCH.htm"
	}

	keywordLen := min(len(strings.ReplaceAll(roleSlug, "-", "")), maxKeywordLength)
	return baseURL + roleSlug + "-salary-SRCH_KO0," + strconv.Itoa(keywordLen) + ".htm"
}

// ParseGlassdoor extracts the embedded pay percentiles from a salary page.
// Each inline script is searched in turn, so a placeholder object in an early
// script does not hide the real one further down. The raw document, which
// only yields its first occurrence, is the fallback for non-HTML bodies.
func ParseGlassdoor(html string) (Percentiles, bool) {
	if html == "" {
		return Percentiles{}, false
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		var found Percentiles
		var ok bool
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found, ok = parsePercentileObject(s.Text())
			return !ok
		})
		if ok {
			return found, true
		}
	}

	return parsePercentileObject(html)
}

func parsePercentileObject(text string) (Percentiles, bool) {
	match := percentileObject.FindStringSubmatch(text)
	if match == nil {
		return Percentiles{}, false
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(match[1]), &data); err != nil {
		return Percentiles{}, false
	}

	p25, ok25 := numeric(data["25"])
	p50, ok50 := numeric(data["50"])
	p75, ok75 := numeric(data["75"])
	if !ok25 || !ok50 || !ok75 || !plausible(p25) || !plausible(p50) || !plausible(p75) {
		return Percentiles{}, false
	}
	return Percentiles{P25: p25, P50: p50, P75: p75}, true
}

func plausible(v float64) bool {
	return isFinite(v) && v >= 0 && v <= maxUsableComp
}
