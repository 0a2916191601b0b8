package response

import (
	"errors"
	"net/http"

	"catalog-backend/internal/shared/apperror"
	"catalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Response is the single envelope every endpoint answers with.
// Category, SubCategory and SearchQuery only appear on filtered lists.
type Response struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message,omitempty"`
	Category    string      `json:"category,omitempty"`
	SubCategory string      `json:"subCategory,omitempty"`
	SearchQuery *string     `json:"searchQuery,omitempty"`
	Count       *int        `json:"count,omitempty"`
	Data        interface{} `json:"data,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// ListOption decorates a list response with the filter that produced it.
type ListOption func(*Response)

func WithCategory(name string) ListOption {
	return func(r *Response) { r.Category = name }
}

func WithSubCategory(name string) ListOption {
	return func(r *Response) { r.SubCategory = name }
}

func WithSearchQuery(q string) ListOption {
	return func(r *Response) { r.SearchQuery = &q }
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// List writes a 200 with the element count next to the data.
func List(c *gin.Context, data interface{}, count int, opts ...ListOption) {
	resp := Response{
		Success: true,
		Count:   &count,
		Data:    data,
	}
	for _, opt := range opts {
		opt(&resp)
	}
	c.JSON(http.StatusOK, resp)
}

func ErrorResponse(c *gin.Context, statusCode int, message string, detail string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// Error maps a service error onto the envelope. Classified errors carry
// their own client message. Anything else becomes a 500 with the
// operation message and the raw error text.
func Error(c *gin.Context, err error, operation string) {
	status := apperror.StatusCode(err)

	if status == http.StatusInternalServerError {
		logger.ErrorWithFields(operation, err, map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})
		ErrorResponse(c, status, operation, err.Error())
		return
	}

	detail := ""
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		detail = appErr.Err.Error()
	}
	ErrorResponse(c, status, apperror.MessageOf(err), detail)
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message, "")
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message, "")
}
