// Package compensation estimates a compensation range and letter grade for a
// resolved role. Estimates come from a heuristic table, two public salary
// sources and an optional generative assist, merged by fixed precedence.
package compensation

import (
	"fmt"
	"math"

	"github.com/jonathan/autoreply/internal/types"
)

// gradeBuckets are descending thresholds in thousands.
var gradeBuckets = []struct {
	minK  float64
	grade string
}{
	{400, "A+"},
	{330, "A"},
	{280, "A-"},
	{240, "B+"},
	{200, "B"},
	{160, "B-"},
	{130, "C+"},
	{100, "C"},
}

// GradeFromComp buckets an annual compensation figure into a letter grade.
func GradeFromComp(median float64) string {
	if !isFinite(median) {
		return types.GradeUnknown
	}

	k := median / 1000
	for _, b := range gradeBuckets {
		if k >= b.minK {
			return b.grade
		}
	}
	return "C-"
}

// maxFormattable keeps the rounded bound inside int range.
const maxFormattable = 1e15

// FormatCompRange renders a range rounded to the nearest $5k, e.g. "$180k-$220k".
func FormatCompRange(low, high float64) string {
	if !isFinite(low) || !isFinite(high) || math.Abs(low) > maxFormattable || math.Abs(high) > maxFormattable {
		return types.AmountUnavailable
	}
	return fmt.Sprintf("$%dk-$%dk", roundToFiveK(low), roundToFiveK(high))
}

// roundToFiveK rounds half up, matching the usual display rounding.
func roundToFiveK(v float64) int {
	return int(math.Floor(v/5000+0.5)) * 5
}

// Percentile interpolates linearly between order statistics of sorted values.
// It returns false for an empty slice.
func Percentile(sorted []float64, p float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if n == 1 {
		return sorted[0], true
	}

	pos := float64(n-1) * p
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if upper >= n {
		return sorted[n-1], true
	}
	if lower < 0 {
		return sorted[0], true
	}

	weight := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight, true
}

// Percentiles summarizes a distribution of annual compensation values.
type Percentiles struct {
	P25 float64
	P50 float64
	P75 float64
}

// Estimate formats the interquartile range and grades the median.
func (p Percentiles) Estimate() types.CompEstimate {
	return types.CompEstimate{
		Amount: FormatCompRange(p.P25, p.P75),
		Grade:  GradeFromComp(p.P50),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
