package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fridgechef/backend/internal/service"
)

// IngredientExtractor turns uploaded image bytes into ingredient names.
type IngredientExtractor interface {
	ExtractIngredients(ctx context.Context, image []byte) ([]string, error)
}

// AnalyzeHandler serves POST /api/analyze-image.
type AnalyzeHandler struct {
	vision IngredientExtractor
}

func NewAnalyzeHandler(vision IngredientExtractor) *AnalyzeHandler {
	return &AnalyzeHandler{vision: vision}
}

// AnalyzeImage reads the multipart image field and returns the extracted
// ingredient list. The upload only ever lives in memory for the duration of
// the request; nothing is written to disk.
func (h *AnalyzeHandler) AnalyzeImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "an image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded image"})
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded image"})
		return
	}
	if len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidMedia.Error()})
		return
	}

	ingredients, err := h.vision.ExtractIngredients(c.Request.Context(), image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
