package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider talks to the saedam backend over its public HTTP
// surface (/api/v1).
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ Provider = &HTTPProvider{}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			// The fairy model can be slow; match the server-side budget.
			Timeout: 60 * time.Second,
		},
	}
}

type chatRequest struct {
	AnonymousID string `json:"anonymous_id"`
	Message     string `json:"message"`
}

func (p *HTTPProvider) Send(ctx context.Context, userID, message string) (*Reply, error) {
	payload, err := json.Marshal(chatRequest{AnonymousID: userID, Message: message})
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/v1/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("chat request rejected: %s", bytes.TrimSpace(body)),
		}
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode reply: %w", err)}
	}
	return &reply, nil
}

// FetchUser retrieves the server-side progression snapshot.
func (p *HTTPProvider) FetchUser(ctx context.Context, userID string) (*UserSnapshot, error) {
	var snapshot UserSnapshot
	if err := p.get(ctx, "/api/v1/users/"+userID, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// FetchMessages retrieves the ordered server-side transcript.
func (p *HTTPProvider) FetchMessages(ctx context.Context, userID string) ([]MessageRecord, error) {
	var body struct {
		Messages []MessageRecord `json:"messages"`
	}
	if err := p.get(ctx, "/api/v1/users/"+userID+"/messages", &body); err != nil {
		return nil, err
	}
	return body.Messages, nil
}

func (p *HTTPProvider) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path, nil)
	if err != nil {
		return &TransportError{Err: err}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("request rejected: %s", bytes.TrimSpace(body)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
