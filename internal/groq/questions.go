package groq

import (
	"context"
)

// GenerateQuestion produces the opening interview question for a candidate.
func (c *Client) GenerateQuestion(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error) {
	return c.generateQuestion(ctx, resumeContent, jobRole, jobDescription, history)
}

// GenerateFollowUpQuestion produces the next question given the conversation
// so far. The prompt and call parameters match GenerateQuestion; the caller
// records the question type.
func (c *Client) GenerateFollowUpQuestion(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error) {
	return c.generateQuestion(ctx, resumeContent, jobRole, jobDescription, history)
}

func (c *Client) generateQuestion(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error) {
	systemPrompt := BuildInterviewPrompt(resumeContent, jobRole, jobDescription, history)

	messages := make([]map[string]string, 0, len(history)+1)
	messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	messages = append(messages, SanitizeMessages(history)...)

	req := ChatRequest{
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.7,
	}

	callContext, cancel := callCtx(ctx, c.questionTimeout)
	defer cancel()

	question, _, err := c.Chat(callContext, req)
	if err != nil {
		return "", err
	}
	return question, nil
}
