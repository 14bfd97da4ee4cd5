package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/autoreply/internal/compensation"
	"github.com/jonathan/autoreply/internal/pipeline"
	"github.com/jonathan/autoreply/internal/types"
)

func TestBox(t *testing.T) {
	var buf bytes.Buffer
	Box(&buf, "TITLE", "first line\nsecond line")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[1], "TITLE")
	assert.Contains(t, lines[3], "first line")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestBox_WrapsLongLines(t *testing.T) {
	var buf bytes.Buffer
	Box(&buf, "T", strings.Repeat("word ", 30))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Greater(t, len(lines), 5)
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line))
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, Wrap("short", 10))
	assert.Equal(t, []string{"aaa bbb", "ccc"}, Wrap("aaa bbb ccc", 7))
	assert.Equal(t, []string{"abcde", "fgh x"}, Wrap("abcdefgh x", 5))
	assert.Equal(t, []string{"ab", "abcde", "f"}, Wrap("ab abcdef", 5))
	assert.Equal(t, []string{""}, Wrap("", 5))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", Clip("abc", 5))
	assert.Equal(t, "ab...", Clip("abcdefgh", 5))
	assert.Equal(t, "ab", Clip("abcdefgh", 2))
	assert.Equal(t, "éé...", Clip("éééééé", 5))
}

func TestPrintClassification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintClassification(types.Classification{Label: types.LabelOutreach, IsOutreach: true, Source: types.SourceWriter, Raw: "OUTREACH"})
	output := buf.String()

	assert.Contains(t, output, "CLASSIFICATION")
	assert.Contains(t, output, "outreach")
	assert.Contains(t, output, "writer")
	assert.Contains(t, output, "OUTREACH")
}

func TestPrintPersonalization(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	name := "Jane"
	p.PrintPersonalization(types.Personalization{RecruiterName: &name})
	output := buf.String()

	assert.Contains(t, output, "Recruiter: Jane")
	assert.Contains(t, output, "Candidate: (unknown)")
}

func TestPrintResearch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResearch(compensation.Report{
		Metadata: types.RoleMetadata{Role: types.RoleBackEndEngineer, Seniority: types.SenioritySenior, Location: types.LocationSeattle},
		Research: types.ResearchResult{
			Glassdoor:    types.CompEstimate{Amount: "$205k-$275k", Grade: "B+"},
			OverallGrade: "B+",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "COMPENSATION RESEARCH")
	assert.Contains(t, output, "Glassdoor:  $205k-$275k (B+)")
	assert.Contains(t, output, "Levels.fyi: Unavailable (N/A)")
	assert.Contains(t, output, "Overall Grade: B+")
}

func TestResearchLines_NoOverallGrade(t *testing.T) {
	lines := ResearchLines(types.ResearchResult{})
	assert.NotContains(t, lines, "Overall")
	assert.Contains(t, lines, "Glassdoor:  Unavailable (N/A)")
}

func TestPrintReplies(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	replies := []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7"}
	p.PrintReplies(replies)
	output := buf.String()

	assert.Contains(t, output, "REPLIES")
	assert.Contains(t, output, "#5")
	assert.NotContains(t, output, "#6")
	assert.Contains(t, output, "... and 2 more replies")
}

func TestPrintReplies_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReplies(nil)
	p.PrintSummary("")

	assert.Empty(t, buf.String())
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProgress(pipeline.ProgressEvent{Step: "summarize", Message: "Summarized recruiter message", RunID: 3, Content: "Hiring a backend engineer"})
	p.PrintProgress(pipeline.ProgressEvent{Step: "compose", Message: "Composed 0 replies", RunID: 3})
	output := buf.String()

	assert.Contains(t, output, "[run 3] summarize")
	assert.Contains(t, output, "SUMMARY")
	assert.Contains(t, output, "Hiring a backend engineer")
	assert.Contains(t, output, "Composed 0 replies")
}
