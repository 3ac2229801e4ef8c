package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix         = "user:%d"
	UserStatsKeyPrefix    = "user:%d:stats"
	UserLikesKeyPrefix    = "user:%d:likes"
	UserRatingsKeyPrefix  = "user:%d:ratings"
	MovieReviewsKeyPrefix = "movie:%d:reviews"
)

const (
	UserTTL         = 5 * time.Minute
	StatsTTL        = 2 * time.Minute
	EngagementTTL   = 5 * time.Minute
	MovieReviewsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserStatsKey(userID uint) string {
	return fmt.Sprintf(UserStatsKeyPrefix, userID)
}

func UserLikesKey(userID uint) string {
	return fmt.Sprintf(UserLikesKeyPrefix, userID)
}

func UserRatingsKey(userID uint) string {
	return fmt.Sprintf(UserRatingsKeyPrefix, userID)
}

func MovieReviewsKey(movieID uint) string {
	return fmt.Sprintf(MovieReviewsKeyPrefix, movieID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateEngagement drops the cached likes, ratings and stats for a user.
// Called after any write that moves a counter.
func InvalidateEngagement(ctx context.Context, userID uint) {
	Invalidate(ctx, UserLikesKey(userID))
	Invalidate(ctx, UserRatingsKey(userID))
	Invalidate(ctx, UserStatsKey(userID))
}

func InvalidateMovieReviews(ctx context.Context, movieID uint) {
	Invalidate(ctx, MovieReviewsKey(movieID))
}
