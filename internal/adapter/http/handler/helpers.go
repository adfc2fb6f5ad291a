package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/adapter/http/middleware"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/usecase"
)

// Page is the limit/offset window of a history listing
type Page struct {
	Limit  int
	Offset int
}

// Window applied when the query leaves it out
const (
	DefaultLimit  = usecase.DefaultPageSize
	MaxLimit      = usecase.MaxPageSize
	DefaultOffset = 0
)

// PageFromQuery reads ?limit= and ?offset=. Unparsable or out of range values
// fall back to the defaults and limit is capped at MaxLimit.
func PageFromQuery(c *gin.Context) Page {
	page := Page{
		Limit:  queryInt(c, "limit", DefaultLimit),
		Offset: queryInt(c, "offset", DefaultOffset),
	}
	if page.Limit < 1 {
		page.Limit = DefaultLimit
	}
	page.Limit = min(page.Limit, MaxLimit)
	if page.Offset < 0 {
		page.Offset = DefaultOffset
	}
	return page
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

// detectionID parses the :id path segment. On failure it has already written
// the 400 response and reports false.
func detectionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		HandleInvalidUUID(c, "detection id")
		return uuid.Nil, false
	}
	return id, true
}

// CallerID returns the owner resolved by the auth middleware, or "" when absent.
func CallerID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}
