package server

import (
	"telanix/internal/events"
	"telanix/internal/models"
	"telanix/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMovieReviews handles GET /api/reviews/movie/:movieId. Reviews come
// back most-helpful first, newest first within ties.
func (s *Server) GetMovieReviews(c *fiber.Ctx) error {
	movieID, err := s.parseID(c, "movieId")
	if err != nil {
		return nil
	}

	reviews, err := s.reviewService.ListByMovie(c.Context(), movieID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, reviews)
}

// GetUserReviews handles GET /api/reviews/user/:userId
func (s *Server) GetUserReviews(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	reviews, err := s.reviewService.ListByUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, reviews)
}

// CreateReview handles POST /api/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var req struct {
		MovieID uint   `json:"movie_id"`
		Score   int    `json:"score"`
		Title   string `json:"title"`
		Content string `json:"content"`
		Spoiler bool   `json:"spoiler"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.Context(), service.CreateReviewInput{
		UserID:  currentUserID(c),
		MovieID: req.MovieID,
		Score:   req.Score,
		Title:   req.Title,
		Content: req.Content,
		Spoiler: req.Spoiler,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	s.publishEvent(c, events.Engagement{Kind: events.KindReview, UserID: currentUserID(c), MovieID: review.MovieID, Score: review.Score, ReviewID: review.ID})
	return models.RespondMessage(c, fiber.StatusCreated, review, "Review published")
}

// UpdateReview handles PUT /api/reviews/:id
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Score   int    `json:"score"`
		Title   string `json:"title"`
		Content string `json:"content"`
		Spoiler bool   `json:"spoiler"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.UpdateReview(c.Context(), service.UpdateReviewInput{
		UserID:   currentUserID(c),
		ReviewID: id,
		Score:    req.Score,
		Title:    req.Title,
		Content:  req.Content,
		Spoiler:  req.Spoiler,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, fiber.StatusOK, review, "Review updated")
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteReview(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	s.publishEvent(c, events.Engagement{Kind: events.KindReviewDeleted, UserID: currentUserID(c), ReviewID: id})
	return models.RespondMessage(c, fiber.StatusOK, nil, "Review deleted")
}

// MarkReviewHelpful handles PUT /api/reviews/:id/helpful. Votes are
// anonymous and not deduplicated.
func (s *Server) MarkReviewHelpful(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.MarkHelpful(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	s.publishEvent(c, events.Engagement{Kind: events.KindHelpfulVote, MovieID: review.MovieID, ReviewID: review.ID})
	return models.Respond(c, fiber.StatusOK, review)
}
