package handler

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform failure envelope
type ErrorBody struct {
	Error string `json:"error"`
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}
