// File: controllers/respond.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"wanderlust/logger"
	"wanderlust/services"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		ve *services.ValidationError
		nf *services.NotFoundError
		ce *services.ConflictError
		te *services.TransportError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.Is(err, services.ErrStoreClosed):
		return http.StatusGone
	case errors.As(err, &te):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes {success:false, error} with the mapped status.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		msg = services.MsgTryAgain
	case http.StatusGone:
		msg = "Your admin session has expired. Please reload the page."
	case http.StatusInternalServerError:
		logger.Error.Printf("[respondError] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		msg = services.MsgTryAgain
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// respondBindError reports a request body gin could not bind, field by field when the
// validator produced the failure.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " validation"
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body", "fields": fields})
}
