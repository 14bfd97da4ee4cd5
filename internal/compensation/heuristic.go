package compensation

import (
	"regexp"
	"strings"

	"github.com/jonathan/autoreply/internal/types"
)

const (
	minFloor      = 45_000
	minSpread     = 15_000
	levelsMinBump = 10_000
	levelsMaxBump = 15_000
)

type salaryRange struct {
	min float64
	max float64
}

var roleBaselines = map[types.RoleCategory]salaryRange{
	types.RoleProductManager:    {130_000, 190_000},
	types.RoleDataScientist:     {135_000, 195_000},
	types.RoleDataEngineer:      {130_000, 190_000},
	types.RoleMobileEngineer:    {140_000, 205_000},
	types.RoleFrontEndEngineer:  {130_000, 185_000},
	types.RoleBackEndEngineer:   {140_000, 210_000},
	types.RoleFullStackEngineer: {135_000, 200_000},
	types.RoleProductDesigner:   {110_000, 160_000},
	types.RoleSiteReliability:   {145_000, 215_000},
	types.RoleSecurityEngineer:  {150_000, 220_000},
	types.RoleSoftwareEngineer:  {140_000, 200_000},
}

var unknownRoleBaseline = salaryRange{120_000, 170_000}

var seniorityOffsets = map[types.SeniorityLevel]float64{
	types.SeniorityIntern:    -80_000,
	types.SeniorityJunior:    -30_000,
	types.SeniorityMid:       0,
	types.SenioritySenior:    40_000,
	types.SeniorityStaff:     80_000,
	types.SeniorityLead:      70_000,
	types.SeniorityExecutive: 140_000,
}

// Location offsets match raw text, not the resolved location, so cities the
// resolver does not know (raleigh, charlotte) still shift the range.
var locationOffsets = []struct {
	pattern *regexp.Regexp
	offset  float64
}{
	{regexp.MustCompile(`san\s+francisco|bay\s+area|silicon\s+valley|mountain\s+view|menlo\s+park|sunnyvale`), 45_000},
	{regexp.MustCompile(`new\s+york|nyc|manhattan|brooklyn`), 35_000},
	{regexp.MustCompile(`seattle|redmond|bellevue`), 25_000},
	{regexp.MustCompile(`austin|denver|atlanta|phoenix|salt\s+lake|raleigh|charlotte`), -10_000},
	{regexp.MustCompile(`remote`), -5_000},
}

// HeuristicRange computes the clamped [min, max] for the metadata.
// It returns false when there is no text to work from.
func HeuristicRange(meta types.RoleMetadata) (low, high float64, ok bool) {
	text := strings.ToLower(meta.CombinedText)
	if text == "" {
		return 0, 0, false
	}

	base, known := roleBaselines[meta.Role]
	if !known {
		base = unknownRoleBaseline
	}
	low, high = base.min, base.max

	boost := seniorityOffsets[meta.Seniority]
	low += boost
	high += boost

	for _, loc := range locationOffsets {
		if loc.pattern.MatchString(text) {
			low += loc.offset
			high += loc.offset
			break
		}
	}

	low = max(minFloor, low)
	high = max(low+minSpread, high)
	return low, high, true
}

// Heuristic produces the offline estimate for both sources. The levels figure
// is offset upward so the two sources never show identical numbers.
func Heuristic(meta types.RoleMetadata) (Suggestion, bool) {
	low, high, ok := HeuristicRange(meta)
	if !ok {
		return Suggestion{}, false
	}

	grade := GradeFromComp((low + high) / 2)
	return Suggestion{
		Glassdoor: &types.CompEstimate{
			Amount: FormatCompRange(low, high),
			Grade:  grade,
		},
		Levels: &types.CompEstimate{
			Amount: FormatCompRange(low+levelsMinBump, high+levelsMaxBump),
			Grade:  grade,
		},
		OverallGrade: grade,
	}, true
}
