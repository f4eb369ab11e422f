package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the standard API response envelope.
type Body struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	CanReveal *bool       `json:"canReveal,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// Revealed sends a 200 response with canReveal=true and data.
func Revealed(c *gin.Context, data interface{}) {
	t := true
	c.JSON(http.StatusOK, Body{Success: true, CanReveal: &t, Data: data})
}

// NotRevealed sends a 403 gated-state response with canReveal=false. This is
// a valid waiting state for the client, not a failure.
func NotRevealed(c *gin.Context, message string) {
	f := false
	c.JSON(http.StatusForbidden, Body{Success: false, CanReveal: &f, Message: message})
}

// BadRequest sends 400 with a message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Message: message})
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Body{Success: false, Message: message})
}

// Forbidden sends 403.
func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Body{Success: false, Message: message})
}

// NotFound sends 404.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Body{Success: false, Message: message})
}

// Conflict sends 409.
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Body{Success: false, Message: message})
}

// Internal sends 500.
func Internal(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Body{Success: false, Message: message})
}
