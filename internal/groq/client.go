package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Groq chat-completions API. Construct it once with
// explicit settings; it holds no global state.
type Client struct {
	apiKey          string
	model           string
	base            string
	questionTimeout time.Duration
	feedbackTimeout time.Duration
	http            *http.Client
}

type Options struct {
	APIKey          string
	Model           string
	BaseURL         string
	QuestionTimeout time.Duration
	FeedbackTimeout time.Duration
	HTTPClient      *http.Client
}

func NewClient(opts Options) *Client {
	c := &Client{
		apiKey:          opts.APIKey,
		model:           opts.Model,
		base:            opts.BaseURL,
		questionTimeout: opts.QuestionTimeout,
		feedbackTimeout: opts.FeedbackTimeout,
		http:            opts.HTTPClient,
	}
	if c.model == "" {
		c.model = "llama3-70b-8192"
	}
	if c.base == "" {
		c.base = "https://api.groq.com/openai/v1"
	}
	if c.questionTimeout <= 0 {
		c.questionTimeout = 30 * time.Second
	}
	if c.feedbackTimeout <= 0 {
		c.feedbackTimeout = 60 * time.Second
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

type ChatRequest struct {
	Model       string              `json:"model"`
	Messages    []map[string]string `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float32             `json:"temperature,omitempty"`
}

type ChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Chat performs a single chat-completion call and returns the trimmed content
// of the first choice along with the raw response body. No retries.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, json.RawMessage, error) {
	if req.Model == "" {
		req.Model = c.model
	}

	url := c.base + "/chat/completions"
	b, _ := json.Marshal(req)
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", nil, err
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", nil, fmt.Errorf("groq api error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var ch ChatResponse
	if err := json.Unmarshal(bodyBytes, &ch); err != nil {
		return "", nil, fmt.Errorf("decode error: %w", err)
	}

	if ch.Error != nil {
		return "", nil, fmt.Errorf("groq api error: %s", ch.Error.Message)
	}

	if len(ch.Choices) == 0 {
		return "", nil, fmt.Errorf("no choices returned")
	}
	return strings.TrimSpace(ch.Choices[0].Message.Content), json.RawMessage(bodyBytes), nil
}

// SanitizeMessages normalizes untrusted conversation turns to the shape the
// upstream API accepts. Fields other than role, content, and name are dropped;
// a missing role defaults to "user" and missing content to "".
func SanitizeMessages(msgs []map[string]any) []map[string]string {
	out := make([]map[string]string, 0, len(msgs))
	for _, msg := range msgs {
		clean := make(map[string]string, 3)
		for _, key := range []string{"role", "content", "name"} {
			v, ok := msg[key]
			if !ok {
				continue
			}
			if s, ok := v.(string); ok {
				clean[key] = s
			} else {
				clean[key] = fmt.Sprint(v)
			}
		}
		if _, ok := clean["role"]; !ok {
			clean["role"] = "user"
		}
		if _, ok := clean["content"]; !ok {
			clean["content"] = ""
		}
		out = append(out, clean)
	}
	return out
}

// callCtx detaches the outbound call from the request context: once issued,
// the upstream call runs to completion or its own timeout even if the client
// disconnects.
func callCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
