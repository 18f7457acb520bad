// File: services/review_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"wanderlust/logger"
	"wanderlust/models"
	"wanderlust/repository"
)

// ReviewInput is a traveller's review form.
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"required,max=2000"`
}

// ReviewService appends reviews to destinations.
type ReviewService struct {
	destinations repository.DestinationRepository
	now          func() time.Time
}

func NewReviewService(destinations repository.DestinationRepository) *ReviewService {
	return &ReviewService{destinations: destinations, now: func() time.Time { return time.Now().UTC() }}
}

// AddReview appends a review by username and recomputes the destination rating.
// The append is a single repository operation, so concurrent reviews are all kept.
func (s *ReviewService) AddReview(ctx context.Context, destinationID, username string, in ReviewInput) (models.Destination, error) {
	if err := validateInput(in); err != nil {
		return models.Destination{}, err
	}

	now := s.now()
	review := models.Review{
		ID:      uuid.NewString(),
		User:    username,
		Rating:  in.Rating,
		Date:    now,
		Comment: in.Comment,
	}
	d, err := s.destinations.AppendReview(ctx, destinationID, review, now)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Destination{}, &NotFoundError{Collection: CollectionDestinations, ID: destinationID}
	}
	if err != nil {
		return models.Destination{}, &TransportError{Op: "save review", Err: err}
	}
	logger.Info.Printf("AddReview: %s rated %s %d/5", username, d.Name, in.Rating)
	return d, nil
}
