package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/VenkataVardineni/careerbuildai/pkg/model"
)

// FeedbackUnavailable is returned in place of real feedback when the upstream
// call or parsing fails.
const FeedbackUnavailable = "Feedback not available."

var feedbackMarker = regexp.MustCompile(`\n\d+\.\s+Feedback:`)

// EvaluateAnswers asks the model to critique each answer and returns one
// feedback string per pair plus the raw upstream payload. Failures never
// propagate: the result degrades to a full-length list of placeholders.
func (c *Client) EvaluateAnswers(ctx context.Context, pairs []model.QAPair, resumeContent, jobRole string, jobDescription *string) ([]string, json.RawMessage) {
	systemPrompt := buildFeedbackPrompt(resumeContent, jobRole, jobDescription)

	var qa strings.Builder
	for i, pair := range pairs {
		if i > 0 {
			qa.WriteString("\n")
		}
		fmt.Fprintf(&qa, "%d. Q: %s\nA: %s", i+1, pair.Question, pair.Answer)
	}
	userPrompt := fmt.Sprintf("Here are the Q&A pairs:\n%s\n\nProvide feedback as described.", qa.String())

	req := ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		MaxTokens:   600,
		Temperature: 0.3,
	}

	callContext, cancel := callCtx(ctx, c.feedbackTimeout)
	defer cancel()

	feedbackText, raw, err := c.Chat(callContext, req)
	if err != nil {
		return placeholders(len(pairs)), nil
	}

	feedback := ParseNumberedFeedback(feedbackText, len(pairs))
	return padToLength(feedback, len(pairs)), raw
}

func buildFeedbackPrompt(resumeContent, jobRole string, jobDescription *string) string {
	var b strings.Builder
	b.WriteString("You are an expert technical interviewer and evaluator.\n")
	b.WriteString("For each question and answer pair below, provide a brief, constructive feedback on the answer's relevance, completeness, and quality with respect to the question asked.\n")
	b.WriteString("If the answer is missing, say 'No answer given.'\n")
	if resumeContent != "" {
		b.WriteString("Resume Content: " + resumeContent + "\n")
	}
	if jobRole != "" {
		b.WriteString("Target Job Role: " + jobRole + "\n")
	}
	if jobDescription != nil && *jobDescription != "" {
		b.WriteString("Job Description: " + *jobDescription + "\n")
	}
	b.WriteString("Return a numbered list of feedback, one for each answer.")
	return b.String()
}

// ParseNumberedFeedback splits a free-text model response into per-answer
// feedback entries. Three tiers, first non-empty result wins:
//
//  1. split on "\n<number>. Feedback:" markers (preamble before the first
//     marker is dropped)
//  2. keep digit-leading lines, stripping the "N. " prefix
//  3. the whole response replicated n times
//
// The entries are aligned positionally; the model's own numbering is not
// checked against n.
func ParseNumberedFeedback(text string, n int) []string {
	chunks := feedbackMarker.Split(text, -1)
	var feedback []string
	for _, chunk := range chunks[1:] {
		feedback = append(feedback, strings.TrimSpace(chunk))
	}
	if len(feedback) > 0 {
		return feedback
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		if _, rest, found := strings.Cut(line, ". "); found {
			feedback = append(feedback, rest)
		} else {
			feedback = append(feedback, line)
		}
	}
	if len(feedback) > 0 {
		return feedback
	}

	feedback = make([]string, n)
	for i := range feedback {
		feedback[i] = text
	}
	return feedback
}

func placeholders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = FeedbackUnavailable
	}
	return out
}

// padToLength forces the result to exactly n entries: short lists are padded
// with the placeholder, long lists truncated.
func padToLength(feedback []string, n int) []string {
	if len(feedback) == n {
		return feedback
	}
	if len(feedback) > n {
		return feedback[:n]
	}
	for len(feedback) < n {
		feedback = append(feedback, FeedbackUnavailable)
	}
	return feedback
}
