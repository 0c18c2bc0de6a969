// Package llm wraps the Groq chat-completions API for transcript
// summarization. Groq exposes an OpenAI-compatible endpoint, so the
// client is the OpenAI SDK pointed at the Groq base URL.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

const systemMessage = `You are an AI assistant specialized in creating comprehensive and well-structured meeting summaries. Your task is to analyze meeting transcripts and create clear, actionable summaries that help participants understand key discussions, decisions, and next steps.

Guidelines:
- Extract key topics, decisions, and action items
- Maintain a professional and clear tone
- Organize information logically
- Highlight important deadlines and responsibilities
- Use markdown formatting for better readability
- Focus on actionable insights and outcomes`

// SummarizeResult holds the generated summary and the token usage of the call.
type SummarizeResult struct {
	Summary   string
	TokensIn  int
	TokensOut int
	Model     string
}

// Summarizer is the interface the lifecycle service consumes.
// Implement it to switch LLM providers.
type Summarizer interface {
	SummarizeTranscript(ctx context.Context, transcript, prompt, model string) (*SummarizeResult, error)
}

// GroqService implements Summarizer against the Groq API
type GroqService struct {
	client *openai.Client
}

// NewGroqService creates a new Groq-backed summarizer. An empty baseURL
// selects the public Groq endpoint.
func NewGroqService(apiKey, baseURL string) *GroqService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &GroqService{client: openai.NewClientWithConfig(cfg)}
}

// SummarizeTranscript sends one chat-completion request and returns the
// generated summary with token counts. A single attempt, no retries.
func (g *GroqService) SummarizeTranscript(ctx context.Context, transcript, prompt, model string) (*SummarizeResult, error) {
	slog.Info("starting llm summarization", "model", model, "transcript_length", len(transcript))

	userMessage := fmt.Sprintf("%s\n\nMeeting Transcript:\n%s", prompt, transcript)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: 0.3,
		MaxTokens:   2048,
		TopP:        1,
	})
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("summarization failed: no content returned from Groq API")
	}

	result := &SummarizeResult{
		Summary:   resp.Choices[0].Message.Content,
		TokensIn:  resp.Usage.PromptTokens,
		TokensOut: resp.Usage.CompletionTokens,
		Model:     model,
	}

	slog.Info("llm summarization completed",
		"model", model,
		"tokens_in", result.TokensIn,
		"tokens_out", result.TokensOut,
		"total_tokens", resp.Usage.TotalTokens)

	return result, nil
}
