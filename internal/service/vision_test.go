package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChat returns a canned response and records what it was asked.
type stubChat struct {
	content     string
	err         error
	gotModel    string
	gotMessages []ChatMessage
	calls       int
}

func (s *stubChat) Chat(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	s.calls++
	s.gotModel = model
	s.gotMessages = messages
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

// tinyPNG is a minimal valid PNG header; enough for content-type sniffing.
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
}

func TestVisionService_ExtractIngredients(t *testing.T) {
	ctx := context.Background()

	t.Run("valid response", func(t *testing.T) {
		stub := &stubChat{content: `{"ingredients": ["당근", "계란"]}`}
		svc := NewVisionService(stub, "vision-model", 1024, nil)

		ingredients, err := svc.ExtractIngredients(ctx, tinyPNG)
		require.NoError(t, err)
		assert.Equal(t, []string{"당근", "계란"}, ingredients)
		assert.Equal(t, "vision-model", stub.gotModel)

		// The request must carry the image as a data URL part.
		require.Len(t, stub.gotMessages, 1)
		parts, ok := stub.gotMessages[0].Content.([]ContentPart)
		require.True(t, ok)
		require.Len(t, parts, 2)
		assert.Equal(t, "image_url", parts[0].Type)
		assert.Contains(t, parts[0].ImageURL.URL, "data:image/png;base64,")
	})

	t.Run("fenced response is accepted", func(t *testing.T) {
		stub := &stubChat{content: "```json\n{\"ingredients\": [\"egg\"]}\n```"}
		svc := NewVisionService(stub, "vision-model", 1024, nil)

		ingredients, err := svc.ExtractIngredients(ctx, tinyPNG)
		require.NoError(t, err)
		assert.Equal(t, []string{"egg"}, ingredients)
	})

	t.Run("duplicates are preserved", func(t *testing.T) {
		stub := &stubChat{content: `{"ingredients": ["egg", "egg"]}`}
		svc := NewVisionService(stub, "vision-model", 1024, nil)

		ingredients, err := svc.ExtractIngredients(ctx, tinyPNG)
		require.NoError(t, err)
		assert.Equal(t, []string{"egg", "egg"}, ingredients)
	})

	t.Run("unsupported media", func(t *testing.T) {
		svc := NewVisionService(&stubChat{}, "vision-model", 1024, nil)

		_, err := svc.ExtractIngredients(ctx, []byte("just some text, not an image"))
		assert.ErrorIs(t, err, ErrInvalidMedia)
	})

	t.Run("payload too large", func(t *testing.T) {
		svc := NewVisionService(&stubChat{}, "vision-model", 8, nil)

		_, err := svc.ExtractIngredients(ctx, tinyPNG)
		assert.ErrorIs(t, err, ErrPayloadTooLarge)
	})

	t.Run("non-JSON response", func(t *testing.T) {
		stub := &stubChat{content: "Sure! I can see carrots and eggs."}
		svc := NewVisionService(stub, "vision-model", 1024, nil)

		_, err := svc.ExtractIngredients(ctx, tinyPNG)
		assert.ErrorIs(t, err, ErrUpstreamParse)
	})

	t.Run("JSON without ingredients array", func(t *testing.T) {
		stub := &stubChat{content: `{"items": ["egg"]}`}
		svc := NewVisionService(stub, "vision-model", 1024, nil)

		_, err := svc.ExtractIngredients(ctx, tinyPNG)
		assert.ErrorIs(t, err, ErrUpstreamParse)
	})

	t.Run("non-string elements are rejected", func(t *testing.T) {
		stub := &stubChat{content: `{"ingredients": [1, 2]}`}
		svc := NewVisionService(stub, "vision-model", 1024, nil)

		_, err := svc.ExtractIngredients(ctx, tinyPNG)
		assert.ErrorIs(t, err, ErrUpstreamParse)
	})

	t.Run("upstream errors pass through", func(t *testing.T) {
		stub := &stubChat{err: ErrUpstreamTimeout}
		svc := NewVisionService(stub, "vision-model", 1024, nil)

		_, err := svc.ExtractIngredients(ctx, tinyPNG)
		assert.ErrorIs(t, err, ErrUpstreamTimeout)
	})
}
