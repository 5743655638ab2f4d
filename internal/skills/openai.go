package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/talentforge/forge/internal/model"
)

// OpenAIExtractor extracts skills with a chat-completion call. The model
// returns a JSON array which is validated against the same shape the
// heuristic extractor produces; on any parse failure the caller falls back
// to the heuristic path.
type OpenAIExtractor struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIExtractor creates the OpenAI-backed extractor.
func NewOpenAIExtractor(cfg model.SkillsConfig) (*OpenAIExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIExtractor{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   chatModel,
		timeout: timeout,
	}, nil
}

// Name returns the extractor name.
func (e *OpenAIExtractor) Name() string { return "openai" }

const extractPrompt = `Extract the technical skills from this job description.
Respond with a JSON array only, no prose. Each element:
{"name": "<skill>", "weight": <0-100 relative importance>, "isRequired": <bool>, "category": "<language|frontend|backend|data|infra|tooling|other>"}

Job description:
%s`

// Extract calls the chat API and parses the JSON skill list.
func (e *OpenAIExtractor) Extract(ctx context.Context, jobText string) ([]model.SkillRequirement, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extractPrompt, jobText)},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var out []model.SkillRequirement
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("parse skill list: %w", err)
	}
	for i := range out {
		if out[i].Weight < 0 {
			out[i].Weight = 0
		}
		if out[i].Weight > 100 {
			out[i].Weight = 100
		}
	}
	return out, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
