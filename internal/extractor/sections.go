package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/corpagent/adgm-compliance-api/internal/models"
)

var clauseNumber = regexp.MustCompile(`^(\d+|[IVXLC]+)[\.\)]\s+\S`)

var headingPrefixes = []string{
	"part ", "article ", "clause ", "schedule ", "section ", "chapter ",
}

// Sections splits extracted text into named sections using heading
// heuristics: numbered clauses, ALL-CAPS lines, and conventional legal
// heading prefixes. Text before the first heading lands in "Preamble".
// The result is empty for empty input, never nil errors.
func Sections(text string) []models.Section {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sections []models.Section
	current := models.Section{Name: "Preamble"}
	var body strings.Builder

	flush := func() {
		current.Text = strings.TrimSpace(body.String())
		if current.Text != "" || current.Name != "Preamble" {
			sections = append(sections, current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) {
			flush()
			current = models.Section{Name: trimmed}
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()

	return sections
}

func isHeading(line string) bool {
	if line == "" || len(line) > 80 {
		return false
	}
	if clauseNumber.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, p := range headingPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return isAllCaps(line)
}

// isAllCaps reports whether a line looks like an ALL-CAPS heading:
// it has letters and none of them are lowercase.
func isAllCaps(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
