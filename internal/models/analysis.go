package models

import "time"

// Severity levels for findings, ordered info < warning < critical.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Finding is a single detected compliance issue or red flag. RuleID always
// refers to an entry in the loaded rule table.
type Finding struct {
	RuleID     string   `json:"rule_id"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Section    string   `json:"section,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// AnalysisResult is the outcome of one analysis pass over a document.
// It is read-only after creation; the score is a pure function of the
// document type, the satisfied rules and the findings.
type AnalysisResult struct {
	DocumentID     string       `json:"document_id"`
	DocumentType   DocumentType `json:"document_type"`
	Confidence     float64      `json:"confidence"`
	Score          int          `json:"score"`
	SatisfiedRules []string     `json:"satisfied_rules"`
	Findings       []Finding    `json:"findings"`
	AnalyzedAt     time.Time    `json:"analyzed_at"`
}

// CriticalCount reports how many findings carry critical severity.
func (r *AnalysisResult) CriticalCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityCritical {
			n++
		}
	}
	return n
}
