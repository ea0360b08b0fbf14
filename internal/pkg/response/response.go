package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Limit       int   `json:"limit"`
}

// envelope is the uniform success shape: {success, data, pagination?, message?}.
type envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// errEnvelope is the uniform error shape: {success:false, message, error?}.
type errEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// OK sends a 200 success response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// OKMsg sends a 200 success response with a message and no data.
func OKMsg(c *gin.Context, message string) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message})
}

// Paged sends a paginated 200 success response.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Pagination: &pagination})
}

// Created sends a 201 success response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// BadRequest sends a 400 error naming the invalid or missing fields.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errEnvelope{Message: message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, errEnvelope{Message: message})
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, errEnvelope{Message: message})
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, errEnvelope{Message: message})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, errEnvelope{Message: "method not allowed"})
}

// NotFoundRoute is the catch-all for unknown paths.
func NotFoundRoute(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, errEnvelope{Message: "route not found"})
}

// InternalError sends a 500 with a generic message. The caller logs the
// underlying error; the detail string is included only for API clients
// that surface it in dashboards.
func InternalError(c *gin.Context, message string, err error) {
	body := errEnvelope{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}
