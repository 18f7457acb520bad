// File: controllers/destination_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderlust/logger"
	"wanderlust/middleware"
	"wanderlust/models"
	"wanderlust/repository"
	"wanderlust/services"
	"wanderlust/session"
)

const qrCodeSize = 300

// DestinationController serves the public destination listing, detail pages and reviews.
type DestinationController struct {
	Destinations   repository.Repository[models.Destination]
	Reviews        *services.ReviewService
	ApplicationURL string
	QREncoder      services.QRCodeEncoder
}

func NewDestinationController(destinations repository.Repository[models.Destination], reviews *services.ReviewService, appURL string) *DestinationController {
	return &DestinationController{Destinations: destinations, Reviews: reviews, ApplicationURL: appURL}
}

// List returns the destinations as a JSON array, filtered by the search and amenity parameters.
func (dc *DestinationController) List(c *gin.Context) {
	items, err := dc.Destinations.List(c.Request.Context())
	if err != nil {
		logger.Error.Printf("List destinations: %v", err)
		respondError(c, &services.TransportError{Op: "list destinations", Err: err})
		return
	}
	c.JSON(http.StatusOK, services.FilterDestinations(items, c.Query("search"), c.Query("amenity")))
}

// Page renders the listing with the search box and amenity facet.
func (dc *DestinationController) Page(c *gin.Context) {
	search, amenity := c.Query("search"), c.Query("amenity")
	data := gin.H{"Search": search, "Amenity": amenity, "Session": session.Indicators(c)}

	items, err := dc.Destinations.List(c.Request.Context())
	if err != nil {
		logger.Error.Printf("Destinations page: %v", err)
		data["Error"] = "Failed to load destinations. Please try again."
		c.HTML(http.StatusServiceUnavailable, "destinations.html", data)
		return
	}
	data["Destinations"] = services.FilterDestinations(items, search, amenity)
	data["Amenities"] = services.Amenities(items)
	c.HTML(http.StatusOK, "destinations.html", data)
}

// Detail renders one destination with its reviews.
func (dc *DestinationController) Detail(c *gin.Context) {
	d, ok := dc.load(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "destination.html", gin.H{"Destination": d, "Session": session.Indicators(c)})
}

func (dc *DestinationController) load(c *gin.Context) (models.Destination, bool) {
	d, err := dc.Destinations.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.String(http.StatusNotFound, "Destination not found")
		return d, false
	case err != nil:
		logger.Error.Printf("Destination %s: %v", c.Param("id"), err)
		c.String(http.StatusServiceUnavailable, services.MsgTryAgain)
		return d, false
	}
	return d, true
}

// AddReview appends a review by the logged-in user.
func (dc *DestinationController) AddReview(c *gin.Context) {
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	id, _ := middleware.CurrentIdentity(c)
	d, err := dc.Reviews.AddReview(c.Request.Context(), c.Param("id"), id.Username, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// QRCode renders a PNG linking to the destination's public page.
func (dc *DestinationController) QRCode(c *gin.Context) {
	d, ok := dc.load(c)
	if !ok {
		return
	}
	url := strings.TrimRight(dc.ApplicationURL, "/") + "/destinations/" + d.ID
	png, err := services.GenerateQRCode(url, qrCodeSize, dc.QREncoder)
	if err != nil {
		logger.Error.Printf("QRCode: Error generating QR code for %s: %v", d.ID, err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}
	c.Header("Content-Disposition", "inline; filename=\"qrcode.png\"")
	c.Data(http.StatusOK, "image/png", png)
}
