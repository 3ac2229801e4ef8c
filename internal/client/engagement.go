package client

import (
	"context"
	"fmt"
	"net/http"

	"telanix/internal/models"
)

// IsLiked reports whether the mirror holds a like for the movie.
func (c *Client) IsLiked(movieID uint) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.likes[movieID]
	return ok
}

// LikedMovies returns the mirrored like set as a slice of movie IDs.
func (c *Client) LikedMovies() []uint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]uint, 0, len(c.likes))
	for id := range c.likes {
		ids = append(ids, id)
	}
	return ids
}

// Like records a like. The mirror is updated only after the server
// acknowledges the mutation.
func (c *Client) Like(ctx context.Context, movieID uint) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	err := c.do(ctx, http.MethodPost, "/api/likes", map[string]uint{"movie_id": movieID}, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.likes[movieID] = struct{}{}
	c.mu.Unlock()
	return nil
}

// Unlike removes a like.
func (c *Client) Unlike(ctx context.Context, movieID uint) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/likes/movie/%d", movieID), nil, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.likes, movieID)
	c.mu.Unlock()
	return nil
}

// ToggleLike likes the movie if it is not in the mirror and unlikes it
// otherwise.
func (c *Client) ToggleLike(ctx context.Context, movieID uint) error {
	if c.IsLiked(movieID) {
		return c.Unlike(ctx, movieID)
	}
	return c.Like(ctx, movieID)
}

// RatingFor returns the mirrored rating for the movie, if any.
func (c *Client) RatingFor(movieID uint) (models.Rating, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.ratings[movieID]
	return r, ok
}

// SetRating saves a score for the movie, creating or replacing the
// rating server-side.
func (c *Client) SetRating(ctx context.Context, movieID uint, score int) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	err := c.do(ctx, http.MethodPost, "/api/ratings", map[string]any{
		"movie_id": movieID, "score": score,
	}, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.ratings[movieID] = models.Rating{UserID: c.userID, MovieID: movieID, Score: score}
	c.mu.Unlock()
	return nil
}

// RemoveRating deletes the rating for the movie.
func (c *Client) RemoveRating(ctx context.Context, movieID uint) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/ratings/movie/%d", movieID), nil, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.ratings, movieID)
	c.mu.Unlock()
	return nil
}
