package response

import (
	"net/http"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"gameaccount_store/internal/errs"
)

// Envelope is the uniform wrapper every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"` // Whether the call succeeded
	Message string `json:"message"` // Human-readable outcome
	Data    any    `json:"data"`    // Payload, null on failure
}

// OK writes a success envelope with the given message and payload.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a success envelope with a 201 status.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope for the given error. Business-rule errors
// surface their own message; anything Internal is logged server-side and
// replaced with a fixed message so raw error text never reaches the client.
func Fail(c *gin.Context, err error) {
	if errs.KindOf(err) == errs.KindInternal {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Request failed")
	}
	c.JSON(errs.HTTPStatus(err), Envelope{Success: false, Message: errs.MessageOf(err), Data: nil})
}

// AbortUnauthorized writes a failure envelope and stops the handler chain.
// Used by middleware.
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Success: false, Message: message, Data: nil})
}

// AbortForbidden writes a failure envelope with a 403 and stops the chain.
func AbortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Envelope{Success: false, Message: message, Data: nil})
}
