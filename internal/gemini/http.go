package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/duitku/duitku/internal/common"
)

// httpClient implements Client against the Gemini REST endpoint.
type httpClient struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

// NewClient creates a Gemini REST client. The API key is required; it
// is checked here rather than per call so a misconfigured deployment
// fails before any network I/O.
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, common.ErrMissingAPIKey
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &httpClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Wire types for the generateContent request and response.
type wirePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *wireInline `json:"inline_data,omitempty"`
}

type wireInline struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type wireContent struct {
	Role  string     `json:"role"`
	Parts []wirePart `json:"parts"`
}

type wireRequest struct {
	Contents []wireContent `json:"contents"`
}

type wireResponse struct {
	Candidates []struct {
		Content struct {
			Parts []wirePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends one request and returns the concatenated reply text.
func (c *httpClient) Generate(ctx context.Context, req Request) (string, error) {
	contents := make([]wireContent, 0, 3)
	if req.SystemPrompt != "" {
		contents = append(contents, wireContent{
			Role:  "user",
			Parts: []wirePart{{Text: req.SystemPrompt}},
		})
	}
	if req.Ack != "" {
		contents = append(contents, wireContent{
			Role:  "model",
			Parts: []wirePart{{Text: req.Ack}},
		})
	}

	var userParts []wirePart
	for _, p := range req.Parts {
		if p.Text != "" {
			userParts = append(userParts, wirePart{Text: p.Text})
		}
		if p.InlineData != nil {
			userParts = append(userParts, wirePart{InlineData: &wireInline{
				MIMEType: p.InlineData.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(p.InlineData.Data),
			}})
		}
	}
	if len(userParts) == 0 {
		return "", common.ErrEmptyTurn
	}
	contents = append(contents, wireContent{Role: "user", Parts: userParts})

	body, err := json.Marshal(wireRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(respBody))
		var wire wireResponse
		if json.Unmarshal(respBody, &wire) == nil && wire.Error != nil {
			msg = wire.Error.Message
		}
		err := fmt.Errorf("%w (status %d): %s", common.ErrUpstream, resp.StatusCode, msg)
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
			// Usually a key restricted to another model or region.
			return "", common.NewUserError("model not found, check API key permissions or region", err)
		}
		return "", err
	}

	var wire wireResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(wire.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", common.ErrUpstream)
	}

	var sb strings.Builder
	for _, p := range wire.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
