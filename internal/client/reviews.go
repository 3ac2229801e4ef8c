package client

import (
	"context"
	"fmt"
	"net/http"

	"telanix/internal/models"
)

// Reviews returns a copy of the mirrored list of the user's own reviews.
func (c *Client) Reviews() []models.Review {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Review, len(c.reviews))
	copy(out, c.reviews)
	return out
}

// ReviewForMovie returns the user's mirrored review of the movie, if any.
func (c *Client) ReviewForMovie(movieID uint) (models.Review, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.reviews {
		if r.MovieID == movieID {
			return r, true
		}
	}
	return models.Review{}, false
}

// SubmitReview publishes a review for the movie. If the mirror already
// holds one of the user's reviews for that movie it is edited in place
// rather than duplicated.
func (c *Client) SubmitReview(ctx context.Context, movieID uint, score int, title, content string, spoiler bool) (*models.Review, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	if existing, ok := c.ReviewForMovie(movieID); ok {
		return c.updateReview(ctx, existing.ID, score, title, content, spoiler)
	}

	var review models.Review
	err := c.do(ctx, http.MethodPost, "/api/reviews", map[string]any{
		"movie_id": movieID,
		"score":    score,
		"title":    title,
		"content":  content,
		"spoiler":  spoiler,
	}, &review)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.reviews = append(c.reviews, review)
	c.mu.Unlock()
	return &review, nil
}

func (c *Client) updateReview(ctx context.Context, reviewID uint, score int, title, content string, spoiler bool) (*models.Review, error) {
	var review models.Review
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/reviews/%d", reviewID), map[string]any{
		"score":   score,
		"title":   title,
		"content": content,
		"spoiler": spoiler,
	}, &review)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i := range c.reviews {
		if c.reviews[i].ID == reviewID {
			c.reviews[i] = review
			break
		}
	}
	c.mu.Unlock()
	return &review, nil
}

// DeleteReview removes one of the user's reviews.
func (c *Client) DeleteReview(ctx context.Context, reviewID uint) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", reviewID), nil, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.reviews[:0]
	for _, r := range c.reviews {
		if r.ID != reviewID {
			kept = append(kept, r)
		}
	}
	c.reviews = kept
	c.mu.Unlock()
	return nil
}

// MovieReviews fetches all reviews for a movie, most helpful first.
// No session is required.
func (c *Client) MovieReviews(ctx context.Context, movieID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/movie/%d", movieID), nil, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// MarkHelpful votes a review as helpful. No session is required.
func (c *Client) MarkHelpful(ctx context.Context, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/reviews/%d/helpful", reviewID), nil, &review)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
