package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/newthinker/prism/internal/core"
)

const systemPrompt = `You are a quantitative trading analyst. You are given
the results of a strategy parameter sweep. Describe, in a short paragraph,
which parameter regions perform well on the target metric, which perform
poorly, and whether performance looks stable or fragile around the best
region. Be specific about parameter values. Do not invent numbers.`

// maxPromptResults caps how many results are serialized into the prompt.
const maxPromptResults = 50

// Summarizer produces sweep commentary through an LLM provider.
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer over the given provider.
func NewSummarizer(provider Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// Summarize asks the provider for commentary on the sweep results,
// ranked by the target metric.
func (s *Summarizer) Summarize(ctx context.Context, results []core.SweepResult, metric string) (string, error) {
	if len(results) == 0 {
		return "", core.ErrNoData
	}

	prompt := buildPrompt(results, metric)

	out, err := s.provider.Complete(ctx, Request{
		System:      systemPrompt,
		Prompt:      prompt,
		MaxTokens:   512,
		Temperature: 0.2,
	})
	if err != nil {
		return "", core.WrapError(core.ErrInsightFailed, err)
	}

	return out, nil
}

// buildPrompt serializes results as a compact table, best metric first.
// Results missing the metric sort last.
func buildPrompt(results []core.SweepResult, metric string) string {
	ranked := make([]core.SweepResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Metric(metric), ranked[j].Metric(metric)
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a > *b
	})

	if len(ranked) > maxPromptResults {
		ranked = ranked[:maxPromptResults]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Target metric: %s\nResults (best first):\n", metric)
	for _, r := range ranked {
		sb.WriteString(formatResult(r, metric))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatResult(r core.SweepResult, metric string) string {
	names := make([]string, 0, len(r.Params))
	for name := range r.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%g", name, r.Params[name])
	}
	if v := r.Metric(metric); v != nil {
		fmt.Fprintf(&sb, " -> %s=%g", metric, *v)
	} else {
		fmt.Fprintf(&sb, " -> %s=n/a", metric)
	}
	return sb.String()
}
