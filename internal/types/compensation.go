package types

// Placeholder values used when no estimate could be produced
const (
	AmountUnavailable = "Unavailable"
	GradeNA           = "N/A"
	GradeUnknown      = "Unknown"
)

// CompEstimate is a formatted compensation range with a letter grade
type CompEstimate struct {
	Amount string `json:"amount"` // e.g. "$180k-$220k" or "Unavailable"
	Grade  string `json:"grade"`  // A+ through C-, "Unknown" or "N/A"
}

// UnavailableEstimate is the hard fallback when every source is empty.
func UnavailableEstimate() CompEstimate {
	return CompEstimate{Amount: AmountUnavailable, Grade: GradeNA}
}

// ResearchResult is the merged compensation research shown next to the replies
type ResearchResult struct {
	Glassdoor    CompEstimate `json:"glassdoor"`
	Levels       CompEstimate `json:"levels"`
	OverallGrade string       `json:"overallGrade"`
}
