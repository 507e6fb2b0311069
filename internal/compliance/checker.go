// Package compliance evaluates a classified document against the static
// rule table and produces the weighted 0-100 score. The score is a pure
// function of the document type and the text; no hidden state.
package compliance

import (
	"fmt"
	"strings"
	"time"

	"github.com/corpagent/adgm-compliance-api/internal/models"
	"github.com/corpagent/adgm-compliance-api/internal/rules"
)

type Checker struct {
	table *rules.Table
}

func New(table *rules.Table) *Checker {
	return &Checker{table: table}
}

// Check evaluates every applicable rule. Satisfied required rules
// contribute their weight; the score is the satisfied share of total
// required weight, scaled to 0-100. Missing required rules become
// warning or critical findings per weight; missing optional rules
// become info findings and never affect the score.
//
// Empty text is an extraction failure by definition: score 0 and a
// single finding documenting it. Never fatal.
func (c *Checker) Check(doc *models.Document) *models.AnalysisResult {
	result := &models.AnalysisResult{
		DocumentID:     doc.ID,
		DocumentType:   doc.DocumentType,
		SatisfiedRules: []string{},
		Findings:       []models.Finding{},
		AnalyzedAt:     time.Now().UTC(),
	}

	text := strings.ToLower(strings.TrimSpace(doc.ExtractedText))
	if text == "" {
		result.DocumentType = models.TypeUnknown
		result.Findings = append(result.Findings, models.Finding{
			RuleID:   rules.ExtractionFailureRuleID,
			Severity: models.SeverityCritical,
			Message:  "No text could be extracted from the document; all rules fail by definition",
		})
		return result
	}

	sectionNames := make(map[string]bool, len(doc.Sections))
	for _, s := range doc.Sections {
		sectionNames[strings.ToLower(s.Name)] = true
	}

	applicable := c.table.ForType(doc.DocumentType)
	satisfiedWeight, totalWeight := 0, 0

	for _, rule := range applicable {
		if rule.Required {
			totalWeight += rule.Weight
		}

		if satisfies(rule, text, sectionNames) {
			if rule.Required {
				satisfiedWeight += rule.Weight
				result.SatisfiedRules = append(result.SatisfiedRules, rule.ID)
			}
			continue
		}

		if rule.Required {
			result.Findings = append(result.Findings, models.Finding{
				RuleID:   rule.ID,
				Severity: c.table.MissingSeverity(rule),
				Message:  fmt.Sprintf("Required: %s", rule.Description),
				Section:  rule.Section,
			})
		} else {
			result.Findings = append(result.Findings, models.Finding{
				RuleID:   rule.ID,
				Severity: models.SeverityInfo,
				Message:  fmt.Sprintf("Recommended: %s", rule.Description),
				Section:  rule.Section,
			})
		}
	}

	if totalWeight > 0 {
		result.Score = 100 * satisfiedWeight / totalWeight
	}
	if result.Score > 100 {
		result.Score = 100
	}

	return result
}

func satisfies(rule rules.ComplianceRule, lowerText string, sectionNames map[string]bool) bool {
	if rule.Section != "" && !sectionNames[strings.ToLower(rule.Section)] {
		return false
	}
	if len(rule.Keywords) == 0 {
		return true
	}
	for _, kw := range rule.Keywords {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
