// File: services/admin_store.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wanderlust/logger"
	"wanderlust/models"
	"wanderlust/repository"
)

// collection names, also used as tab names and event names
const (
	CollectionDestinations = "destinations"
	CollectionUsers        = "users"
	CollectionBookings     = "bookings"
)

// DestinationInput is the admin form for a new destination.
type DestinationInput struct {
	Name        string   `json:"name" binding:"required,max=120"`
	Location    string   `json:"location" binding:"required,max=120"`
	Price       float64  `json:"price" binding:"gte=0"`
	Image       string   `json:"image" binding:"omitempty,url"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
	Features    []string `json:"features"`
	Rating      float64  `json:"rating" binding:"gte=0,lte=5"`
}

// DestinationPatch changes only the fields that are set.
type DestinationPatch struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=120"`
	Location    *string   `json:"location" binding:"omitempty,min=1,max=120"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Image       *string   `json:"image" binding:"omitempty,url"`
	Description *string   `json:"description"`
	Amenities   *[]string `json:"amenities"`
	Features    *[]string `json:"features"`
	Rating      *float64  `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

func (p DestinationPatch) apply(d *models.Destination) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Amenities != nil {
		d.Amenities = *p.Amenities
	}
	if p.Features != nil {
		d.Features = *p.Features
	}
	if p.Rating != nil {
		d.Rating = *p.Rating
	}
}

// UserInput is the admin form for a new user.
type UserInput struct {
	Name        string              `json:"name" binding:"required"`
	Email       string              `json:"email" binding:"required,email"`
	Username    string              `json:"username" binding:"required,min=3,max=40"`
	Password    string              `json:"password" binding:"required,min=6"`
	Role        models.Role         `json:"role" binding:"omitempty,oneof=admin user"`
	Bio         string              `json:"bio"`
	Avatar      string              `json:"avatar" binding:"omitempty,url"`
	Preferences *models.Preferences `json:"preferences"`
}

// UserPatch changes only the fields that are set. A new password is hashed before it is stored.
type UserPatch struct {
	Name        *string             `json:"name" binding:"omitempty,min=1"`
	Email       *string             `json:"email" binding:"omitempty,email"`
	Username    *string             `json:"username" binding:"omitempty,min=3,max=40"`
	Password    *string             `json:"password" binding:"omitempty,min=6"`
	Role        *models.Role        `json:"role" binding:"omitempty,oneof=admin user"`
	Bio         *string             `json:"bio"`
	Avatar      *string             `json:"avatar" binding:"omitempty,url"`
	Preferences *models.Preferences `json:"preferences"`
}

// BookingPatch is what an admin may change on a booking.
type BookingPatch struct {
	Status *models.BookingStatus `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

// AdminStore holds one admin session's copies of the three collections.
type AdminStore struct {
	Destinations *Collection[models.Destination]
	Users        *Collection[models.User]
	Bookings     *Collection[models.Booking]

	now func() time.Time
}

// NewAdminStore creates a store whose collections start idle.
func NewAdminStore(m repository.Manager) *AdminStore {
	return &AdminStore{
		Destinations: NewCollection[models.Destination](CollectionDestinations, m.Destinations()),
		Users:        NewCollection[models.User](CollectionUsers, m.Users()),
		Bookings:     NewCollection(CollectionBookings, m.Bookings()),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Close tears the store down. Responses still in flight are dropped.
func (s *AdminStore) Close() {
	s.Destinations.Close()
	s.Users.Close()
	s.Bookings.Close()
}

// ---------------- destinations ----------------

func (s *AdminStore) CreateDestination(ctx context.Context, in DestinationInput) (models.Destination, error) {
	if err := validateInput(in); err != nil {
		return models.Destination{}, err
	}
	now := s.now()
	d := models.Destination{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Location:    in.Location,
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
		Amenities:   nonNil(in.Amenities),
		Features:    nonNil(in.Features),
		Rating:      in.Rating,
		Reviews:     []models.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Destinations.Create(ctx, d); err != nil {
		return models.Destination{}, err
	}
	logger.Info.Printf("CreateDestination: %s (%s)", d.Name, d.ID)
	return d, nil
}

func (s *AdminStore) UpdateDestination(ctx context.Context, id string, p DestinationPatch) (models.Destination, error) {
	if err := validateInput(p); err != nil {
		return models.Destination{}, err
	}
	return s.Destinations.Update(ctx, id, func(d *models.Destination) error {
		p.apply(d)
		d.UpdatedAt = s.now()
		return nil
	})
}

func (s *AdminStore) DeleteDestination(ctx context.Context, id string) error {
	return s.Destinations.Delete(ctx, id)
}

// ---------------- users ----------------

func (s *AdminStore) CreateUser(ctx context.Context, in UserInput) (models.User, error) {
	if err := validateInput(in); err != nil {
		return models.User{}, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	prefs := models.DefaultPreferences()
	if in.Preferences != nil {
		prefs = *in.Preferences
	}

	now := s.now()
	u := models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		Bio:          in.Bio,
		Avatar:       in.Avatar,
		Preferences:  prefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return models.User{}, err
	}
	logger.Info.Printf("CreateUser: %s (role=%s)", u.Username, u.Role)
	return u, nil
}

func (s *AdminStore) UpdateUser(ctx context.Context, id string, p UserPatch) (models.User, error) {
	if err := validateInput(p); err != nil {
		return models.User{}, err
	}
	var hash string
	if p.Password != nil {
		var err error
		if hash, err = HashPassword(*p.Password); err != nil {
			return models.User{}, err
		}
	}

	return s.Users.Update(ctx, id, func(u *models.User) error {
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Email != nil {
			u.Email = *p.Email
		}
		if p.Username != nil {
			u.Username = *p.Username
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		if p.Role != nil {
			u.Role = *p.Role
		}
		if p.Bio != nil {
			u.Bio = *p.Bio
		}
		if p.Avatar != nil {
			u.Avatar = *p.Avatar
		}
		if p.Preferences != nil {
			u.Preferences = *p.Preferences
		}
		u.UpdatedAt = s.now()
		return nil
	})
}

func (s *AdminStore) DeleteUser(ctx context.Context, id string) error {
	return s.Users.Delete(ctx, id)
}

// ---------------- bookings ----------------

func (s *AdminStore) UpdateBooking(ctx context.Context, id string, p BookingPatch) (models.Booking, error) {
	if err := validateInput(p); err != nil {
		return models.Booking{}, err
	}
	return s.Bookings.Update(ctx, id, func(b *models.Booking) error {
		if p.Status != nil {
			b.Status = *p.Status
		}
		b.UpdatedAt = s.now()
		return nil
	})
}

func (s *AdminStore) DeleteBooking(ctx context.Context, id string) error {
	return s.Bookings.Delete(ctx, id)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
