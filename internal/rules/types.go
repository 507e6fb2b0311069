package rules

import "github.com/corpagent/adgm-compliance-api/internal/models"

// ComplianceRule is one entry of the static rule table. A rule with no
// DocumentTypes is generic and applies to every document, including ones
// classified as Unknown. The predicate holds when any keyword occurs in
// the document text, and, if Section is set, a section with that name
// was detected.
type ComplianceRule struct {
	ID            string   `yaml:"id" json:"id"`
	Description   string   `yaml:"description" json:"description"`
	DocumentTypes []string `yaml:"document_types,omitempty" json:"document_types,omitempty"`
	Keywords      []string `yaml:"keywords" json:"keywords"`
	Section       string   `yaml:"section,omitempty" json:"section,omitempty"`
	Weight        int      `yaml:"weight" json:"weight"`
	Required      bool     `yaml:"required" json:"required"`
}

// AppliesTo reports whether the rule participates in checks for the
// given document type.
func (r *ComplianceRule) AppliesTo(dt models.DocumentType) bool {
	if len(r.DocumentTypes) == 0 {
		return true
	}
	for _, t := range r.DocumentTypes {
		if models.DocumentType(t) == dt {
			return true
		}
	}
	return false
}

// RedFlagPattern describes one known-problematic pattern. Match is
// either "present" (any phrase occurring is the problem) or "absent"
// (none of the phrases occurring is the problem).
type RedFlagPattern struct {
	ID          string   `yaml:"id" json:"id"`
	Description string   `yaml:"description" json:"description"`
	Match       string   `yaml:"match" json:"match"`
	Phrases     []string `yaml:"phrases" json:"phrases"`
	Severity    string   `yaml:"severity" json:"severity"`
	Suggestion  string   `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
}

const (
	MatchPresent = "present"
	MatchAbsent  = "absent"
)

// QAEntry maps normalized question keywords to a canned expert answer.
type QAEntry struct {
	ID         string   `yaml:"id" json:"id"`
	Keywords   []string `yaml:"keywords" json:"keywords"`
	Answer     string   `yaml:"answer" json:"answer"`
	References []string `yaml:"references,omitempty" json:"references,omitempty"`
}

// ClassifierLabel carries the keyword set for one document type.
// Priority breaks score ties; lower wins.
type ClassifierLabel struct {
	Type     string   `yaml:"type" json:"type"`
	Priority int      `yaml:"priority" json:"priority"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Hints    []string `yaml:"hints,omitempty" json:"hints,omitempty"`
}

type ClassifierConfig struct {
	MinScore  int               `yaml:"min_score" json:"min_score"`
	HintBonus int               `yaml:"hint_bonus" json:"hint_bonus"`
	Labels    []ClassifierLabel `yaml:"labels" json:"labels"`
}

type ScoringConfig struct {
	// CriticalWeight is the rule weight at or above which a missing
	// required rule is reported as critical rather than warning.
	CriticalWeight int `yaml:"critical_weight" json:"critical_weight"`
}
