// Package advisor answers free-text ADGM questions. It tries the static
// knowledge base first, then an optional LLM with a bounded timeout,
// and always degrades to a deterministic canned response. External
// failures never reach the caller.
package advisor

import (
	"context"
	"strings"
	"time"

	"github.com/corpagent/adgm-compliance-api/internal/models"
	"github.com/corpagent/adgm-compliance-api/internal/rules"
	"github.com/corpagent/adgm-compliance-api/internal/utils"
)

const (
	SourceKnowledgeBase = "knowledge_base"
	SourceLLM           = "llm"
	SourceFallback      = "fallback"

	// minKeywordHits is how many knowledge-base keywords a question
	// must hit before the entry is considered a match.
	minKeywordHits = 2

	// FallbackAnswer is returned whenever neither the knowledge base
	// nor the LLM produced an answer. It must stay deterministic.
	FallbackAnswer = "I could not find a specific answer in the ADGM knowledge base. " +
		"Please consult the ADGM Companies Regulations 2020 or a qualified " +
		"legal professional for guidance on this question."
)

// LLMClient is the external language-model dependency. Implementations
// must honor context cancellation.
type LLMClient interface {
	Answer(ctx context.Context, question, docContext string) (string, error)
}

type Advisor struct {
	entries []rules.QAEntry
	llm     LLMClient
	timeout time.Duration
	logger  *utils.Logger
}

// New builds an advisor. llm may be nil when no credential is
// configured; the advisor then goes straight to the fallback on a
// knowledge-base miss.
func New(table *rules.Table, llm LLMClient, timeout time.Duration, logger *utils.Logger) *Advisor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Advisor{entries: table.QA, llm: llm, timeout: timeout, logger: logger}
}

// Ask never returns an error: every failure path ends in the canned
// fallback response.
func (a *Advisor) Ask(ctx context.Context, question, docContext string) *models.AnswerResponse {
	resp := &models.AnswerResponse{Question: question}

	if entry, ok := a.lookup(question); ok {
		resp.Answer = entry.Answer
		resp.Source = SourceKnowledgeBase
		resp.References = entry.References
		return resp
	}

	if a.llm != nil {
		llmCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		answer, err := a.llm.Answer(llmCtx, question, docContext)
		if err == nil && strings.TrimSpace(answer) != "" {
			resp.Answer = answer
			resp.Source = SourceLLM
			return resp
		}
		if err != nil {
			a.logger.Warn("LLM call failed, using fallback", "error", err)
		}
	}

	resp.Answer = FallbackAnswer
	resp.Source = SourceFallback
	return resp
}

// lookup normalizes the question and scores each knowledge-base entry
// by keyword hits. First entry wins ties, so answers are stable across
// runs.
func (a *Advisor) lookup(question string) (rules.QAEntry, bool) {
	normalized := normalize(question)

	best := rules.QAEntry{}
	bestHits := 0
	for _, entry := range a.entries {
		hits := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(normalized, strings.ToLower(kw)) {
				hits++
			}
		}
		if hits > bestHits {
			best = entry
			bestHits = hits
		}
	}

	return best, bestHits >= minKeywordHits
}

func normalize(q string) string {
	q = strings.ToLower(q)
	replacer := strings.NewReplacer("?", " ", "!", " ", ".", " ", ",", " ", ";", " ", ":", " ")
	return strings.Join(strings.Fields(replacer.Replace(q)), " ")
}
