// Package classifier assigns a document type by counting label-specific
// keyword occurrences in the extracted text. Unknown is a valid result,
// not an error.
package classifier

import (
	"strings"

	"github.com/corpagent/adgm-compliance-api/internal/models"
	"github.com/corpagent/adgm-compliance-api/internal/rules"
)

type Classifier struct {
	cfg rules.ClassifierConfig
}

func New(table *rules.Table) *Classifier {
	return &Classifier{cfg: table.Classifier}
}

// Classify scores every label against the text plus an optional
// filename hint and returns the winner with a confidence in [0,1].
// Ties break on label priority (lower wins). A best score below the
// configured minimum yields Unknown.
func (c *Classifier) Classify(text, filename string) (models.DocumentType, float64) {
	lowerText := strings.ToLower(text)
	lowerName := strings.ToLower(filename)

	best := -1
	bestPriority := 0
	bestType := models.TypeUnknown
	total := 0

	for _, label := range c.cfg.Labels {
		score := 0
		for _, kw := range label.Keywords {
			score += strings.Count(lowerText, kw)
		}
		for _, hint := range label.Hints {
			if hint != "" && strings.Contains(lowerName, hint) {
				score += c.cfg.HintBonus
				break
			}
		}
		total += score

		if score > best || (score == best && label.Priority < bestPriority) {
			best = score
			bestPriority = label.Priority
			bestType = models.DocumentType(label.Type)
		}
	}

	if best < c.cfg.MinScore {
		return models.TypeUnknown, 0
	}

	confidence := float64(best) / float64(total)
	if confidence > 1 {
		confidence = 1
	}
	return bestType, confidence
}
