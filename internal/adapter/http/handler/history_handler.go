package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/usecase"
)

// csvHeader is the first row of an exported history
var csvHeader = []string{"Date", "Label", "Confidence", "News Text", "Explanation"}

// HistoryHandler handles the owner-scoped history endpoints
type HistoryHandler struct {
	historyUC usecase.HistoryUsecase
	now       func() time.Time
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyUC usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{
		historyUC: historyUC,
		now:       time.Now,
	}
}

// List handles GET /api/v1/detections
func (h *HistoryHandler) List(c *gin.Context) {
	page := PageFromQuery(c)

	output, err := h.historyUC.List(c.Request.Context(), CallerID(c), page.Limit, page.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Get handles GET /api/v1/detections/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	id, ok := detectionID(c)
	if !ok {
		return
	}

	output, err := h.historyUC.Get(c.Request.Context(), CallerID(c), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Delete handles DELETE /api/v1/detections/:id
func (h *HistoryHandler) Delete(c *gin.Context) {
	id, ok := detectionID(c)
	if !ok {
		return
	}

	if err := h.historyUC.Delete(c.Request.Context(), CallerID(c), id); err != nil {
		HandleUsecaseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export handles GET /api/v1/detections/export
func (h *HistoryHandler) Export(c *gin.Context) {
	detections, err := h.historyUC.Export(c.Request.Context(), CallerID(c))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	data, err := encodeHistoryCSV(detections)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	filename := fmt.Sprintf("fake-news-history-%s.csv", h.now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func encodeHistoryCSV(detections []*usecase.DetectionOutput) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, d := range detections {
		explanation := ""
		if d.Explanation != nil {
			explanation = *d.Explanation
		}
		record := []string{
			d.CreatedAt.UTC().Format(time.DateTime),
			string(d.Label),
			FormatConfidence(d.Score),
			d.NewsText,
			explanation,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatConfidence renders a score as a percentage with one decimal, e.g. 0.912 -> "91.2%"
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
