// Package redflags scans document text for known-problematic patterns.
// The scan is independent of classification and never fails: malformed
// input yields a single low-confidence note.
package redflags

import (
	"strings"

	"github.com/corpagent/adgm-compliance-api/internal/models"
	"github.com/corpagent/adgm-compliance-api/internal/rules"
)

type Detector struct {
	patterns []rules.RedFlagPattern
}

func New(table *rules.Table) *Detector {
	return &Detector{patterns: table.RedFlags}
}

// Detect runs every pattern against the text. Each pattern yields at
// most one finding, located at the first section containing the match
// when sections are available.
func (d *Detector) Detect(text string, sections []models.Section) []models.Finding {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return []models.Finding{{
			RuleID:   rules.ExtractionFailureRuleID,
			Severity: models.SeverityInfo,
			Message:  "Document text is empty or unreadable; red-flag scan skipped",
		}}
	}

	var findings []models.Finding
	for _, p := range d.patterns {
		matched, phrase := anyPhrase(lower, p.Phrases)

		flag := (p.Match == rules.MatchPresent && matched) ||
			(p.Match == rules.MatchAbsent && !matched)
		if !flag {
			continue
		}

		findings = append(findings, models.Finding{
			RuleID:     p.ID,
			Severity:   models.Severity(p.Severity),
			Message:    p.Description,
			Section:    locate(sections, phrase),
			Suggestion: p.Suggestion,
		})
	}
	return findings
}

func anyPhrase(lowerText string, phrases []string) (bool, string) {
	for _, phrase := range phrases {
		if strings.Contains(lowerText, strings.ToLower(phrase)) {
			return true, phrase
		}
	}
	return false, ""
}

// locate returns the name of the first section containing the phrase,
// or "" when the phrase is empty (absence patterns) or not found.
func locate(sections []models.Section, phrase string) string {
	if phrase == "" {
		return ""
	}
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Text), phrase) ||
			strings.Contains(strings.ToLower(s.Name), phrase) {
			return s.Name
		}
	}
	return ""
}
