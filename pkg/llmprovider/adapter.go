package llmprovider

import (
	"context"
	"fmt"

	"guest-response-agent/pkg/deepseek"
	"guest-response-agent/pkg/groq"
)

// GroqAdapter adapts pkg/groq to the llmprovider.Provider interface
type GroqAdapter struct {
	client groq.IGroq
}

// NewGroqAdapter creates a new Groq adapter
func NewGroqAdapter(client groq.IGroq) *GroqAdapter {
	return &GroqAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GroqAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	groqReq := &groq.Request{
		Messages:    convertToGroqMessages(req),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, groqReq)
	if err != nil {
		return nil, fmt.Errorf("groq: %w", err)
	}

	return &Response{
		Text:         resp.Content,
		ProviderName: "groq",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *GroqAdapter) Name() string {
	return "groq"
}

// Model returns the model name
func (a *GroqAdapter) Model() string {
	return a.client.Model()
}

func convertToGroqMessages(req *Request) []groq.Message {
	messages := make([]groq.Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != nil && req.SystemInstruction.Text != "" {
		messages = append(messages, groq.Message{Role: "system", Content: req.SystemInstruction.Text})
	}
	for _, m := range req.Messages {
		messages = append(messages, groq.Message{Role: m.Role, Content: m.Text})
	}
	return messages
}

// DeepSeekAdapter adapts pkg/deepseek to the llmprovider.Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	deepseekReq := &deepseek.Request{
		Messages:    convertToDeepSeekMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	// Add system instruction as first message if present
	if req.SystemInstruction != nil && req.SystemInstruction.Text != "" {
		systemMsg := deepseek.Message{
			Role:    "system",
			Content: req.SystemInstruction.Text,
		}
		deepseekReq.Messages = append([]deepseek.Message{systemMsg}, deepseekReq.Messages...)
	}

	resp, err := a.client.GenerateContent(ctx, deepseekReq)
	if err != nil {
		return nil, fmt.Errorf("deepseek: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("deepseek: no choices returned")
	}

	return &Response{
		Text:         resp.Choices[0].Message.Content,
		ProviderName: "deepseek",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *DeepSeekAdapter) Name() string {
	return "deepseek"
}

// Model returns the model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

func convertToDeepSeekMessages(msgs []Message) []deepseek.Message {
	messages := make([]deepseek.Message, 0, len(msgs))
	for _, msg := range msgs {
		messages = append(messages, deepseek.Message{
			Role:    msg.Role,
			Content: msg.Text,
		})
	}
	return messages
}
