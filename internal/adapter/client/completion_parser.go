package client

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/entity"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
)

// defaultScore is used when a completion carries no usable score
const defaultScore = 0.5

// ParseVerdict turns a free-text completion into a classification.
//
// The first well-formed JSON object in the text wins. Its label is FAKE when it
// upper-cases to FAKE and REAL otherwise. Without a JSON object the earliest
// case-insensitive occurrence of FAKE or REAL decides (REAL when neither occurs)
// and the raw completion becomes the explanation.
func ParseVerdict(completion string) *service.ClassificationResult {
	if obj, ok := extractJSONObject(completion); ok {
		return &service.ClassificationResult{
			Label:       labelFromValue(obj["label"]),
			Score:       scoreFromValue(obj["score"]),
			Explanation: stringFromValue(obj["explanation"]),
			Explained:   true,
		}
	}

	return &service.ClassificationResult{
		Label:       labelFromText(completion),
		Score:       defaultScore,
		Explanation: completion,
		Explained:   true,
	}
}

// extractJSONObject decodes the first '{' position that starts a valid JSON object
func extractJSONObject(s string) (map[string]any, bool) {
	for start := 0; start < len(s); {
		i := strings.IndexByte(s[start:], '{')
		if i < 0 {
			return nil, false
		}
		pos := start + i

		var obj map[string]any
		if err := json.NewDecoder(strings.NewReader(s[pos:])).Decode(&obj); err == nil && obj != nil {
			return obj, true
		}
		start = pos + 1
	}
	return nil, false
}

func labelFromValue(v any) entity.Label {
	s, ok := v.(string)
	if ok && strings.ToUpper(strings.TrimSpace(s)) == string(entity.LabelFake) {
		return entity.LabelFake
	}
	return entity.LabelReal
}

func scoreFromValue(v any) float64 {
	switch s := v.(type) {
	case float64:
		return s
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return defaultScore
}

func stringFromValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func labelFromText(text string) entity.Label {
	upper := strings.ToUpper(text)
	fakeAt := strings.Index(upper, string(entity.LabelFake))
	realAt := strings.Index(upper, string(entity.LabelReal))

	if fakeAt >= 0 && (realAt < 0 || fakeAt < realAt) {
		return entity.LabelFake
	}
	return entity.LabelReal
}
