package exporter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpagent/adgm-compliance-api/internal/models"
)

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		DocumentID:     "doc-42",
		DocumentType:   models.TypeArticlesOfAssociation,
		Confidence:     0.82,
		Score:          75,
		SatisfiedRules: []string{"GEN-001", "AOA-001"},
		Findings: []models.Finding{
			{RuleID: "GEN-002", Severity: models.SeverityWarning, Message: "Required: Contains a governing law clause"},
			{RuleID: "RF-002", Severity: models.SeverityCritical, Message: "Confers jurisdiction on non-ADGM courts", Section: "7. DISPUTES", Suggestion: "Jurisdiction clauses must designate the ADGM Courts."},
		},
		AnalyzedAt: time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC),
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	original := sampleResult()

	artifact, err := Export(original, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", artifact.ContentType)

	parsed, err := ParseJSON(artifact.Data)
	require.NoError(t, err)

	assert.Equal(t, original.Score, parsed.Score)
	assert.Equal(t, original.DocumentType, parsed.DocumentType)
	require.Len(t, parsed.Findings, len(original.Findings))
	for i, f := range original.Findings {
		assert.Equal(t, f.RuleID, parsed.Findings[i].RuleID)
	}
}

// Exports must be byte-identical for the same input.
func TestExportIsDeterministic(t *testing.T) {
	result := sampleResult()

	for _, format := range []string{FormatJSON, FormatCSV, FormatText} {
		first, err := Export(result, format)
		require.NoError(t, err)
		second, err := Export(result, format)
		require.NoError(t, err)
		assert.Equal(t, first.Data, second.Data, format)
	}
}

func TestExportCSV(t *testing.T) {
	artifact, err := Export(sampleResult(), FormatCSV)
	require.NoError(t, err)

	out := string(artifact.Data)
	assert.Contains(t, out, "score,75")
	assert.Contains(t, out, "rule_id,severity,section,message,suggestion")
	assert.Contains(t, out, "RF-002,critical,7. DISPUTES")
	assert.Equal(t, "text/csv", artifact.ContentType)
}

func TestExportText(t *testing.T) {
	artifact, err := Export(sampleResult(), FormatText)
	require.NoError(t, err)

	out := string(artifact.Data)
	assert.Contains(t, out, "Score:         75/100")
	assert.Contains(t, out, "[critical] RF-002")
	assert.Contains(t, out, "Resolve all critical findings")
	assert.True(t, strings.HasPrefix(out, "ADGM Compliance Report"))
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export(sampleResult(), "xml")
	assert.Error(t, err)
}

func TestExportFilenamesCarryDocumentID(t *testing.T) {
	for format, ext := range map[string]string{FormatJSON: ".json", FormatCSV: ".csv", FormatText: ".txt"} {
		artifact, err := Export(sampleResult(), format)
		require.NoError(t, err)
		assert.Contains(t, artifact.Filename, "doc-42")
		assert.True(t, strings.HasSuffix(artifact.Filename, ext))
	}
}
