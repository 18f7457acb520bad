// File: models/destination.go
package models

import (
	"math"
	"time"
)

// Review is a traveller's rating of one destination.
type Review struct {
	ID      string    `bson:"id" json:"id"`
	User    string    `bson:"user" json:"user"`
	Rating  int       `bson:"rating" json:"rating"`
	Date    time.Time `bson:"date" json:"date"`
	Comment string    `bson:"comment" json:"comment"`
}

// Destination is a bookable place shown on the public listing.
type Destination struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Location    string    `bson:"location" json:"location"`
	Price       float64   `bson:"price" json:"price"`
	Image       string    `bson:"image" json:"image"`
	Description string    `bson:"description" json:"description"`
	Amenities   []string  `bson:"amenities" json:"amenities"`
	Features    []string  `bson:"features" json:"features"`
	Rating      float64   `bson:"rating" json:"rating"`
	Reviews     []Review  `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GetID returns the record id.
func (d Destination) GetID() string { return d.ID }

// HasAmenity reports whether amenity is listed exactly.
func (d Destination) HasAmenity(amenity string) bool {
	for _, a := range d.Amenities {
		if a == amenity {
			return true
		}
	}
	return false
}

// AverageRating is the mean review rating rounded to one decimal, or the stored rating when
// there are no reviews yet.
func (d Destination) AverageRating() float64 {
	if len(d.Reviews) == 0 {
		return d.Rating
	}
	total := 0
	for _, r := range d.Reviews {
		total += r.Rating
	}
	mean := float64(total) / float64(len(d.Reviews))
	return math.Round(mean*10) / 10
}
