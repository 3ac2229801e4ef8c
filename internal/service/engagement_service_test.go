package service

import (
	"context"
	"testing"

	"telanix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_LikeMovie(t *testing.T) {
	liked := map[uint]bool{}
	repo := &engagementRepoStub{
		likeFn: func(_ context.Context, _ uint, movieID uint) error {
			if liked[movieID] {
				return models.NewConflictError("Movie already liked")
			}
			liked[movieID] = true
			return nil
		},
	}
	svc := NewEngagementService(repo)
	ctx := context.Background()

	require.NoError(t, svc.LikeMovie(ctx, 1, 10))

	err := svc.LikeMovie(ctx, 1, 10)
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.AsAppError(err).Code)

	err = svc.LikeMovie(ctx, 1, 0)
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.AsAppError(err).Code)
}

func TestEngagementService_RateMovie(t *testing.T) {
	tests := []struct {
		name         string
		score        int
		expectedCode string
	}{
		{name: "Minimum score", score: 1},
		{name: "Maximum score", score: 5},
		{name: "Below range", score: 0, expectedCode: models.CodeValidation},
		{name: "Above range", score: 6, expectedCode: models.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoCalled := false
			repo := &engagementRepoStub{
				rateFn: func(_ context.Context, userID, movieID uint, score int) (*models.Rating, error) {
					repoCalled = true
					return &models.Rating{UserID: userID, MovieID: movieID, Score: score}, nil
				},
			}
			svc := NewEngagementService(repo)

			rating, err := svc.RateMovie(context.Background(), RateMovieInput{UserID: 1, MovieID: 2, Score: tt.score})
			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, models.AsAppError(err).Code)
				// Out-of-range scores must never reach the repository.
				assert.False(t, repoCalled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.score, rating.Score)
		})
	}
}

func TestEngagementService_RateMovieRequiresMovieID(t *testing.T) {
	svc := NewEngagementService(&engagementRepoStub{})
	_, err := svc.RateMovie(context.Background(), RateMovieInput{UserID: 1, MovieID: 0, Score: 3})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.AsAppError(err).Code)
}

func TestEngagementService_UnrateMissing(t *testing.T) {
	repo := &engagementRepoStub{
		unrateFn: func(_ context.Context, _, movieID uint) error {
			return models.NewNotFoundError("Rating", movieID)
		},
	}
	svc := NewEngagementService(repo)

	err := svc.UnrateMovie(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.AsAppError(err).Code)
}

func TestEngagementService_GetRatingAbsent(t *testing.T) {
	repo := &engagementRepoStub{
		getRatingFn: func(_ context.Context, _, _ uint) (*models.Rating, error) {
			return nil, nil
		},
	}
	svc := NewEngagementService(repo)

	rating, err := svc.GetRating(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Nil(t, rating)
}
