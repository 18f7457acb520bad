// File: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderlust/content"
	"wanderlust/logger"
	"wanderlust/models"
	"wanderlust/repository"
	"wanderlust/session"
)

// how many destinations the home page features
const featuredCount = 3

// PageController renders the informational pages from fixed content.
type PageController struct {
	Content      content.Content
	Destinations repository.Repository[models.Destination]
}

func NewPageController(c content.Content, destinations repository.Repository[models.Destination]) *PageController {
	return &PageController{Content: c, Destinations: destinations}
}

// Health reports liveness.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: Health check requested")
	c.String(http.StatusOK, "OK")
}

// Home renders the landing page with a few featured destinations. A backend failure only
// hides the featured section.
func (pc *PageController) Home(c *gin.Context) {
	var featured []models.Destination
	if items, err := pc.Destinations.List(c.Request.Context()); err != nil {
		logger.Warn.Printf("Home: featured destinations unavailable: %v", err)
	} else {
		featured = items[:min(featuredCount, len(items))]
	}
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Hero":     pc.Content.Hero,
		"Features": pc.Content.Features,
		"Featured": featured,
		"Session":  session.Indicators(c),
	})
}

func (pc *PageController) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{
		"Values":  pc.Content.Values,
		"Stats":   pc.Content.Stats,
		"Session": session.Indicators(c),
	})
}

func (pc *PageController) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"Cards":   pc.Content.ContactCards,
		"Session": session.Indicators(c),
	})
}
