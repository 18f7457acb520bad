// File: controllers/contact_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderlust/models"
	"wanderlust/services"
)

type ContactController struct {
	Service *services.ContactService
}

func NewContactController(svc *services.ContactService) *ContactController {
	return &ContactController{Service: svc}
}

// Submit validates and delivers a contact message. Missing fields never reach the mailer.
func (cc *ContactController) Submit(c *gin.Context) {
	var req models.ContactRequest
	_ = c.ShouldBindJSON(&req)

	if err := cc.Service.Submit(c.Request.Context(), req); err != nil {
		status := statusFor(err)
		msg := services.MsgContactRequired
		if status != http.StatusBadRequest {
			msg = services.MsgTryAgain
		}
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": services.MsgContactThanks})
}
