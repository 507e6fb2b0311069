// Package exporter serializes an AnalysisResult into downloadable
// artifacts. Serialization only; no analysis logic. Output is
// byte-identical for identical input so reports can be diffed and
// round-tripped.
package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/corpagent/adgm-compliance-api/internal/models"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"
)

// Artifact is one exported representation of an analysis result.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Export serializes the result in the requested format.
func Export(result *models.AnalysisResult, format string) (*Artifact, error) {
	switch format {
	case FormatJSON:
		return exportJSON(result)
	case FormatCSV:
		return exportCSV(result)
	case FormatText:
		return exportText(result)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// ParseJSON re-parses a JSON artifact back into an AnalysisResult,
// supporting the export round-trip.
func ParseJSON(data []byte) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &result, nil
}

func exportJSON(result *models.AnalysisResult) (*Artifact, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return &Artifact{
		Data:        data,
		ContentType: "application/json",
		Filename:    fmt.Sprintf("compliance-report-%s.json", result.DocumentID),
	}, nil
}

func exportCSV(result *models.AnalysisResult) (*Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"document_id", result.DocumentID},
		{"document_type", string(result.DocumentType)},
		{"score", strconv.Itoa(result.Score)},
		{"critical_findings", strconv.Itoa(result.CriticalCount())},
		{},
		{"rule_id", "severity", "section", "message", "suggestion"},
	}
	for _, f := range result.Findings {
		rows = append(rows, []string{f.RuleID, string(f.Severity), f.Section, f.Message, f.Suggestion})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return &Artifact{
		Data:        buf.Bytes(),
		ContentType: "text/csv",
		Filename:    fmt.Sprintf("compliance-report-%s.csv", result.DocumentID),
	}, nil
}

func exportText(result *models.AnalysisResult) (*Artifact, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "ADGM Compliance Report\n")
	fmt.Fprintf(&buf, "======================\n\n")
	fmt.Fprintf(&buf, "Document:      %s\n", result.DocumentID)
	fmt.Fprintf(&buf, "Type:          %s\n", result.DocumentType)
	fmt.Fprintf(&buf, "Score:         %d/100\n", result.Score)
	fmt.Fprintf(&buf, "Satisfied:     %d rules\n", len(result.SatisfiedRules))
	fmt.Fprintf(&buf, "Findings:      %d (%d critical)\n\n", len(result.Findings), result.CriticalCount())

	if len(result.Findings) > 0 {
		fmt.Fprintf(&buf, "Findings\n--------\n")
		for _, f := range result.Findings {
			fmt.Fprintf(&buf, "[%s] %s: %s\n", f.Severity, f.RuleID, f.Message)
			if f.Section != "" {
				fmt.Fprintf(&buf, "    Location: %s\n", f.Section)
			}
			if f.Suggestion != "" {
				fmt.Fprintf(&buf, "    Suggestion: %s\n", f.Suggestion)
			}
		}
		fmt.Fprintf(&buf, "\n")
	}

	fmt.Fprintf(&buf, "Recommendations\n---------------\n")
	if result.CriticalCount() > 0 {
		fmt.Fprintf(&buf, "- Resolve all critical findings before filing with the ADGM registrar.\n")
	}
	if result.Score < 70 {
		fmt.Fprintf(&buf, "- Compliance score is below the recommended threshold; review required sections and jurisdiction clauses.\n")
	}
	if len(result.Findings) == 0 {
		fmt.Fprintf(&buf, "- No issues found.\n")
	}
	fmt.Fprintf(&buf, "- This report is assistance only and does not constitute legal advice.\n")

	return &Artifact{
		Data:        buf.Bytes(),
		ContentType: "text/plain; charset=utf-8",
		Filename:    fmt.Sprintf("compliance-report-%s.txt", result.DocumentID),
	}, nil
}
