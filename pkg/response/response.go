package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the failure payload shape used across the API: {"message": "..."}.
// Success payloads are written as-is, without an envelope.
type ErrorBody struct {
	Message string `json:"message"`
}

// OK writes a 200 response with the given payload
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// Fail writes an error response with the given status and message
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Message: message})
}

// BadRequest writes a 400 error response
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 error response
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 error response
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

// NotFound writes a 404 error response
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Conflict writes a 409 error response
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

// InternalError writes a 500 error response. The underlying error is for the
// caller to log; it is never exposed in the body.
func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Server error")
}
