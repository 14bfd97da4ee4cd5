package types

// Outreach labels
const (
	LabelOutreach = "outreach"
	LabelOther    = "other"
)

// Classification provenance tags
const (
	SourceWriter          = "writer"
	SourceWriterHeuristic = "writer+heuristic"
	SourceHeuristic       = "heuristic"
)

// Classification is the outreach verdict for the captured text
type Classification struct {
	Label      string `json:"label"`
	IsOutreach bool   `json:"isOutreach"`
	Source     string `json:"source"`
	Raw        string `json:"raw,omitempty"`
}

// Personalization holds first-name guesses. Nil means unknown.
type Personalization struct {
	RecruiterName *string `json:"recruiterName"`
	UserName      *string `json:"userName"`
}
