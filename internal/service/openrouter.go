package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/fridgechef/backend/config"
	"github.com/fridgechef/backend/internal/logger"
)

// ChatClient is the upstream model transport. Both the ingredient extractor
// and the recipe generator speak through it.
type ChatClient interface {
	Chat(ctx context.Context, model string, messages []ChatMessage) (string, error)
}

// ChatMessage is one message in a chat-completions request. Content is either
// a plain string or a []ContentPart for vision requests.
type ChatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *ImageURLPart `json:"image_url,omitempty"`
}

type ImageURLPart struct {
	URL string `json:"url"`
}

// TextMessage builds a plain user message.
func TextMessage(text string) ChatMessage {
	return ChatMessage{Role: "user", Content: text}
}

// VisionMessage builds a user message carrying a base64 data-URL image
// followed by the instruction text.
func VisionMessage(dataURL, text string) ChatMessage {
	return ChatMessage{
		Role: "user",
		Content: []ContentPart{
			{Type: "image_url", ImageURL: &ImageURLPart{URL: dataURL}},
			{Type: "text", Text: text},
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenRouterClient talks to an OpenRouter-compatible chat-completions API.
type OpenRouterClient struct {
	client *resty.Client
}

// NewOpenRouterClient creates the upstream client. The configured timeout is
// the hard ceiling on a single call; a slower upstream surfaces as
// ErrUpstreamTimeout, never a hang.
func NewOpenRouterClient(cfg config.OpenRouterConfig) (*OpenRouterClient, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY must be set")
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey)

	return &OpenRouterClient{client: client}, nil
}

// Chat submits the messages and returns choices[0].message.content.
func (c *OpenRouterClient) Chat(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	var result chatResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatRequest{Model: model, Messages: messages}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			logger.L.Error("upstream model request timed out",
				zap.String("model", model),
				zap.Error(err),
			)
			return "", ErrUpstreamTimeout
		}
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		logger.L.Error("upstream model returned error status",
			zap.String("model", model),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", sanitizeBody(resp.Body())),
		)
		return "", fmt.Errorf("%w: upstream status %d", ErrUpstreamParse, resp.StatusCode())
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		logger.L.Error("upstream model returned empty choices",
			zap.String("model", model),
			zap.String("response", sanitizeBody(resp.Body())),
		)
		return "", fmt.Errorf("%w: empty response", ErrUpstreamParse)
	}

	return result.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

// sanitizeBody keeps raw upstream bodies loggable without ever echoing image
// payloads into the logs.
func sanitizeBody(body []byte) string {
	s := string(body)
	if strings.Contains(s, "data:image/") || strings.Contains(s, ";base64,") {
		return "[IMAGE_DATA_REMOVED]"
	}
	if len(s) > 4096 {
		s = s[:4096] + "...(truncated)"
	}
	return s
}

// stripJSONFence removes a surrounding ```json fence when the model wraps its
// answer in one. Everything else is left untouched for the strict decoder.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeStrict decodes one JSON value and rejects trailing content.
func decodeStrict(raw string, v interface{}) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing content after JSON value")
	}
	return nil
}
