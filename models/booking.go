// File: models/booking.go
package models

import "time"

// BookingStatus tracks a booking through admin review.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a user's reservation of a destination.
type Booking struct {
	ID              string        `bson:"_id" json:"id"`
	UserID          string        `bson:"userId" json:"userId"`
	Username        string        `bson:"username" json:"username"`
	DestinationID   string        `bson:"destinationId" json:"destinationId"`
	DestinationName string        `bson:"destinationName" json:"destinationName"`
	CheckIn         time.Time     `bson:"checkIn" json:"checkIn"`
	CheckOut        time.Time     `bson:"checkOut" json:"checkOut"`
	Guests          int           `bson:"guests" json:"guests"`
	TotalPrice      float64       `bson:"totalPrice" json:"totalPrice"`
	Status          BookingStatus `bson:"status" json:"status"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// GetID returns the record id.
func (b Booking) GetID() string { return b.ID }
