package rules

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corpagent/adgm-compliance-api/internal/models"
)

// ExtractionFailureRuleID is the reserved rule id used for the single
// finding emitted when no text could be extracted from a document.
const ExtractionFailureRuleID = "GEN-EXTRACT"

//go:embed rules.yaml
var defaultRules []byte

// Table holds the full static rule set: classifier keywords, compliance
// rules, red-flag patterns and the Q&A knowledge base. It is loaded once
// at process start and never mutated afterwards.
type Table struct {
	Classifier ClassifierConfig `yaml:"classifier" json:"classifier"`
	Scoring    ScoringConfig    `yaml:"scoring" json:"scoring"`
	Compliance []ComplianceRule `yaml:"compliance" json:"compliance"`
	RedFlags   []RedFlagPattern `yaml:"red_flags" json:"red_flags"`
	QA         []QAEntry        `yaml:"qa" json:"qa"`

	byID map[string]struct{}
}

// Default parses the embedded rule set. It panics on a malformed embed,
// which can only happen at build time.
func Default() *Table {
	t, err := parse(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("embedded rules are invalid: %v", err))
	}
	return t
}

// Load reads a rule table from a YAML file, falling back to the
// embedded default when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}

	t.byID = make(map[string]struct{}, len(t.Compliance)+len(t.RedFlags)+1)
	for _, r := range t.Compliance {
		t.byID[r.ID] = struct{}{}
	}
	for _, p := range t.RedFlags {
		t.byID[p.ID] = struct{}{}
	}
	t.byID[ExtractionFailureRuleID] = struct{}{}

	return &t, nil
}

func (t *Table) validate() error {
	if len(t.Classifier.Labels) == 0 {
		return fmt.Errorf("rules: classifier has no labels")
	}
	if t.Scoring.CriticalWeight <= 0 {
		return fmt.Errorf("rules: scoring.critical_weight must be positive")
	}
	seen := map[string]bool{}
	for _, r := range t.Compliance {
		if r.ID == "" {
			return fmt.Errorf("rules: compliance rule with empty id")
		}
		if seen[r.ID] {
			return fmt.Errorf("rules: duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
		if r.Weight <= 0 {
			return fmt.Errorf("rules: rule %s has non-positive weight", r.ID)
		}
		if len(r.Keywords) == 0 && r.Section == "" {
			return fmt.Errorf("rules: rule %s has no predicate", r.ID)
		}
	}
	for _, p := range t.RedFlags {
		if p.ID == "" {
			return fmt.Errorf("rules: red-flag pattern with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("rules: duplicate rule id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Match != MatchPresent && p.Match != MatchAbsent {
			return fmt.Errorf("rules: pattern %s has invalid match mode %q", p.ID, p.Match)
		}
		if len(p.Phrases) == 0 {
			return fmt.Errorf("rules: pattern %s has no phrases", p.ID)
		}
		switch models.Severity(p.Severity) {
		case models.SeverityInfo, models.SeverityWarning, models.SeverityCritical:
		default:
			return fmt.Errorf("rules: pattern %s has invalid severity %q", p.ID, p.Severity)
		}
	}
	return nil
}

// HasRule reports whether the id belongs to the loaded table. Used to
// uphold the invariant that every finding references a known rule.
func (t *Table) HasRule(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// ForType returns the compliance rules applicable to a document type:
// generic rules plus rules that list the type. Unknown documents only
// ever receive generic rules.
func (t *Table) ForType(dt models.DocumentType) []ComplianceRule {
	out := make([]ComplianceRule, 0, len(t.Compliance))
	for _, r := range t.Compliance {
		if r.AppliesTo(dt) {
			out = append(out, r)
		}
	}
	return out
}

// MissingSeverity maps a missing required rule's weight to a finding
// severity.
func (t *Table) MissingSeverity(r ComplianceRule) models.Severity {
	if r.Weight >= t.Scoring.CriticalWeight {
		return models.SeverityCritical
	}
	return models.SeverityWarning
}
