package compensation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/autoreply/internal/types"
)

// Suggestion is one source's contribution to a ResearchResult.
// Nil estimates and an empty OverallGrade mean the source has nothing to say.
type Suggestion struct {
	Glassdoor    *types.CompEstimate
	Levels       *types.CompEstimate
	OverallGrade string
}

// amountAliases are the keys accepted for the amount of a loosely shaped candidate.
var amountAliases = []string{"amount", "range", "value", "avg", "mean"}

// NormalizeCandidate converts a loosely shaped candidate into an estimate.
// A bare string becomes {amount: s, grade: "N/A"}. Objects expose their
// amount under one of the alias keys. Anything without a usable amount is absent.
func NormalizeCandidate(candidate any) (types.CompEstimate, bool) {
	switch v := candidate.(type) {
	case nil:
		return types.CompEstimate{}, false
	case string:
		return estimateFrom(v, "")
	case types.CompEstimate:
		return estimateFrom(v.Amount, v.Grade)
	case *types.CompEstimate:
		if v == nil {
			return types.CompEstimate{}, false
		}
		return estimateFrom(v.Amount, v.Grade)
	case map[string]any:
		var amount string
		for _, key := range amountAliases {
			if s, ok := scalarString(v[key]); ok {
				amount = s
				break
			}
		}
		grade, _ := scalarString(v["grade"])
		return estimateFrom(amount, grade)
	default:
		return types.CompEstimate{}, false
	}
}

func estimateFrom(amount, grade string) (types.CompEstimate, bool) {
	amount = strings.TrimSpace(amount)
	if isAbsent(amount) {
		return types.CompEstimate{}, false
	}
	grade = strings.TrimSpace(grade)
	if grade == "" {
		grade = types.GradeNA
	}
	return types.CompEstimate{Amount: amount, Grade: grade}, true
}

// isAbsent treats the placeholder amount as missing so lower-priority sources can win.
// This holds for the assist too: its literal "Unavailable" must not beat a
// lookup or the heuristic, even though the assist ranks first.
func isAbsent(s string) bool {
	return s == "" || strings.EqualFold(s, types.AmountUnavailable)
}

// scalarString renders JSON scalars as text. Zero numbers and false are empty.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		if t == 0 || !isFinite(t) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		if t == 0 {
			return "", false
		}
		return strconv.Itoa(t), true
	case bool:
		if !t {
			return "", false
		}
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

// PickFirst returns the first usable candidate, or the unavailable placeholder.
func PickFirst(candidates ...*types.CompEstimate) types.CompEstimate {
	for _, c := range candidates {
		if est, ok := NormalizeCandidate(c); ok {
			return est
		}
	}
	return types.UnavailableEstimate()
}

// Merge combines suggestions given in priority order. Each field takes the
// first usable value independently of the others.
func Merge(suggestions ...Suggestion) types.ResearchResult {
	glassdoor := make([]*types.CompEstimate, 0, len(suggestions))
	levels := make([]*types.CompEstimate, 0, len(suggestions))
	overall := types.GradeUnknown
	overallSet := false

	for _, s := range suggestions {
		glassdoor = append(glassdoor, s.Glassdoor)
		levels = append(levels, s.Levels)
		if !overallSet && !isAbsent(strings.TrimSpace(s.OverallGrade)) {
			overall = strings.TrimSpace(s.OverallGrade)
			overallSet = true
		}
	}

	return types.ResearchResult{
		Glassdoor:    PickFirst(glassdoor...),
		Levels:       PickFirst(levels...),
		OverallGrade: overall,
	}
}
