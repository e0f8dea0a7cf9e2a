package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// apiError is the uniform error body every endpoint responds with
type apiError struct {
	Message          string            `json:"message"`
	Timestamp        int64             `json:"timestamp"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// fail writes the uniform error body with the message resolved against
// the request's language preference
func (a *API) fail(c *gin.Context, status int, key string) {
	c.AbortWithStatusJSON(status, apiError{
		Message:   translate(c, key),
		Timestamp: time.Now().UnixMilli(),
		Path:      c.Request.URL.Path,
	})
}

// failValidation writes a 400 with per-field messages. The values in
// errs are catalog keys and get localized here
func (a *API) failValidation(c *gin.Context, errs map[string]string) {
	translated := make(map[string]string, len(errs))
	for field, key := range errs {
		translated[field] = translate(c, key)
	}

	c.AbortWithStatusJSON(400, apiError{
		Message:          translate(c, "validation_failure"),
		Timestamp:        time.Now().UnixMilli(),
		Path:             c.Request.URL.Path,
		ValidationErrors: translated,
	})
}
