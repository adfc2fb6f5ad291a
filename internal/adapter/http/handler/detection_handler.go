package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/adapter/auth"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/usecase"
)

// DetectionHandler handles the detection endpoint
type DetectionHandler struct {
	detectionUC usecase.DetectionUsecase
}

// NewDetectionHandler creates a new detection handler
func NewDetectionHandler(detectionUC usecase.DetectionUsecase) *DetectionHandler {
	return &DetectionHandler{detectionUC: detectionUC}
}

// DetectRequest is the request body of POST /api/v1/detect
type DetectRequest struct {
	NewsText string `json:"newsText"`
}

// Detect handles POST /api/v1/detect
func (h *DetectionHandler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "invalid request body: "+err.Error())
		return
	}

	output, err := h.detectionUC.Detect(c.Request.Context(), &usecase.DetectInput{
		NewsText:    req.NewsText,
		BearerToken: auth.BearerToken(c.GetHeader("Authorization")),
	})
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
