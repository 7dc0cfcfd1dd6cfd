package fairy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// historyWindow caps how much prior conversation travels to the model.
const historyWindow = 10

// OpenAICompatProvider talks to any OpenAI-compatible chat-completions
// endpoint; the saedam model runs behind one locally (llama.cpp).
type OpenAICompatProvider struct {
	BaseURL string
	Model   string
	APIKey  string
	Client  *http.Client
}

var _ Provider = &OpenAICompatProvider{}

func NewOpenAICompatProvider(baseURL, model, apiKey string) *OpenAICompatProvider {
	return &OpenAICompatProvider{
		BaseURL: baseURL,
		Model:   model,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// --- Wire structs (internal to this package) ---

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

func (p *OpenAICompatProvider) Respond(ctx context.Context, req Request) (*Response, error) {
	messages := []completionMessage{
		{Role: "system", Content: BuildSystemPrompt(req.Level)},
	}

	history := req.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, msg := range history {
		messages = append(messages, completionMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, completionMessage{Role: "user", Content: req.UserMessage})

	payload, err := json.Marshal(completionRequest{Model: p.Model, Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("completion request failed (status %d): %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	reply := completion.Choices[0].Message.Content
	isDeep := AnalyzeDepth(req.UserMessage)

	return &Response{
		Message:            reply,
		IsDeep:             isDeep,
		EmotionalIntensity: AnalyzeEmotionalIntensity(req.UserMessage),
		AffectionGained:    CalcAffection(isDeep),
	}, nil
}
