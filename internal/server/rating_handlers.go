package server

import (
	"telanix/internal/events"
	"telanix/internal/models"
	"telanix/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserRatings handles GET /api/ratings/user/:userId
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	ratings, err := s.engagementService.ListRatings(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, ratings)
}

// GetUserMovieRating handles GET /api/ratings/user/:userId/movie/:movieId
func (s *Server) GetUserMovieRating(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	movieID, err := s.parseID(c, "movieId")
	if err != nil {
		return nil
	}

	rating, err := s.engagementService.GetRating(c.Context(), userID, movieID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if rating == nil {
		return models.RespondWithError(c, models.NewNotFoundError("Rating", movieID))
	}
	return models.Respond(c, fiber.StatusOK, rating)
}

// RateMovie handles POST /api/ratings. Rating the same movie again
// overwrites the score.
func (s *Server) RateMovie(c *fiber.Ctx) error {
	var req struct {
		MovieID uint `json:"movie_id"`
		Score   int  `json:"score"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.engagementService.RateMovie(c.Context(), service.RateMovieInput{
		UserID:  currentUserID(c),
		MovieID: req.MovieID,
		Score:   req.Score,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	s.publishEvent(c, events.Engagement{Kind: events.KindRate, UserID: currentUserID(c), MovieID: req.MovieID, Score: req.Score})
	return models.RespondMessage(c, fiber.StatusCreated, rating, "Rating saved")
}

// UnrateMovie handles DELETE /api/ratings/movie/:movieId
func (s *Server) UnrateMovie(c *fiber.Ctx) error {
	movieID, err := s.parseID(c, "movieId")
	if err != nil {
		return nil
	}

	if err := s.engagementService.UnrateMovie(c.Context(), currentUserID(c), movieID); err != nil {
		return models.RespondWithError(c, err)
	}
	s.publishEvent(c, events.Engagement{Kind: events.KindUnrate, UserID: currentUserID(c), MovieID: movieID})
	return models.RespondMessage(c, fiber.StatusOK, nil, "Rating removed")
}
