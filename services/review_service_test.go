// file: services/review_service_test.go
package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlust/models"
	"wanderlust/repository"
)

func TestReviewService_AddReview(t *testing.T) {
	ctx := context.Background()
	repos := seededManager(ctx, models.Destination{ID: "d1", Name: "Bali", Rating: 3})
	svc := NewReviewService(repos.Destinations())

	d, err := svc.AddReview(ctx, "d1", "alice", ReviewInput{Rating: 5, Comment: "Paradise"})
	require.NoError(t, err)
	require.Len(t, d.Reviews, 1)
	assert.Equal(t, "alice", d.Reviews[0].User)
	assert.Equal(t, 5.0, d.Rating)

	d, err = svc.AddReview(ctx, "d1", "bob", ReviewInput{Rating: 4, Comment: "Lovely"})
	require.NoError(t, err)
	assert.Equal(t, 4.5, d.Rating)

	stored, _ := repos.Destinations().Get(ctx, "d1")
	assert.Len(t, stored.Reviews, 2)
}

func TestReviewService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewReviewService(seededManager(ctx, models.Destination{ID: "d1"}).Destinations())

	var ve *ValidationError
	_, err := svc.AddReview(ctx, "d1", "alice", ReviewInput{Rating: 6, Comment: "x"})
	assert.ErrorAs(t, err, &ve)
	_, err = svc.AddReview(ctx, "d1", "alice", ReviewInput{Rating: 3})
	assert.ErrorAs(t, err, &ve)

	var nf *NotFoundError
	_, err = svc.AddReview(ctx, "nope", "alice", ReviewInput{Rating: 3, Comment: "x"})
	assert.ErrorAs(t, err, &nf)
}

// slowGetRepo delays Get so a read-modify-write would interleave.
type slowGetRepo struct {
	*repository.MemoryDestinationRepository
}

func (r slowGetRepo) Get(ctx context.Context, id string) (models.Destination, error) {
	time.Sleep(20 * time.Millisecond)
	return r.MemoryDestinationRepository.Get(ctx, id)
}

// Test: every successful AddReview is stored when reviews arrive together
func TestReviewService_ConcurrentReviewsAllKept(t *testing.T) {
	ctx := context.Background()
	repo := slowGetRepo{repository.NewMemoryDestinationRepository()}
	require.NoError(t, repo.Create(ctx, models.Destination{ID: "d1", Name: "Bali"}))
	svc := NewReviewService(repo)

	const reviewers = 10
	var wg sync.WaitGroup
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddReview(ctx, "d1", fmt.Sprintf("user%d", i), ReviewInput{Rating: 4, Comment: "Great"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, stored.Reviews, reviewers)
	assert.Equal(t, 4.0, stored.Rating)
}
