package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fridgechef/backend/internal/logger"
)

const extractionPrompt = `Identify every food ingredient visible in this fridge/food image.
Respond with a single JSON object in exactly this shape:
{"ingredients": ["ingredient1", "ingredient2", "ingredient3"]}

Do not include any text outside the JSON.`

var acceptedImageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// VisionService extracts ingredient names from an uploaded image via the
// upstream vision model. Purely a request/response transform; the uploaded
// bytes are never persisted here.
type VisionService struct {
	client       ChatClient
	model        string
	maxSizeBytes int64
	redis        *redis.Client
	cacheTTL     time.Duration
}

// NewVisionService creates a VisionService. redisClient may be nil; caching
// is then disabled.
func NewVisionService(client ChatClient, model string, maxSizeBytes int64, redisClient *redis.Client) *VisionService {
	return &VisionService{
		client:       client,
		model:        model,
		maxSizeBytes: maxSizeBytes,
		redis:        redisClient,
		cacheTTL:     24 * time.Hour,
	}
}

// ExtractIngredients validates the image and asks the vision model for the
// ingredient list. Duplicate names in the model's answer are preserved.
func (s *VisionService) ExtractIngredients(ctx context.Context, image []byte) ([]string, error) {
	if int64(len(image)) > s.maxSizeBytes {
		return nil, ErrPayloadTooLarge
	}

	contentType := http.DetectContentType(image)
	if _, ok := acceptedImageTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMedia, contentType)
	}

	cacheKey := fmt.Sprintf("extract:%x", sha256.Sum256(image))
	if cached, ok := s.cachedIngredients(ctx, cacheKey); ok {
		return cached, nil
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	content, err := s.client.Chat(ctx, s.model, []ChatMessage{
		VisionMessage(dataURL, extractionPrompt),
	})
	if err != nil {
		return nil, err
	}

	ingredients, err := parseIngredients(content)
	if err != nil {
		logger.L.Error("failed to parse vision model response",
			zap.Error(err),
			zap.String("raw_response", sanitizeBody([]byte(content))),
		)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamParse, err)
	}

	s.storeIngredients(ctx, cacheKey, ingredients)
	return ingredients, nil
}

// parseIngredients enforces the {"ingredients": [string...]} contract. Shapes
// that don't conform are rejected, never coerced.
func parseIngredients(content string) ([]string, error) {
	var parsed struct {
		Ingredients *[]string `json:"ingredients"`
	}
	if err := decodeStrict(stripJSONFence(content), &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %v", err)
	}
	if parsed.Ingredients == nil {
		return nil, fmt.Errorf("response lacks an ingredients array")
	}
	return *parsed.Ingredients, nil
}

// Cache reads and writes are soft: a Redis failure degrades to a fresh
// upstream call.
func (s *VisionService) cachedIngredients(ctx context.Context, key string) ([]string, bool) {
	if s.redis == nil {
		return nil, false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var ingredients []string
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return nil, false
	}
	logger.L.Debug("extraction cache hit", zap.String("key", key))
	return ingredients, true
}

func (s *VisionService) storeIngredients(ctx context.Context, key string, ingredients []string) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(ingredients)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		logger.L.Warn("failed to cache extraction result", zap.Error(err))
	}
}
