package server

import (
	"telanix/internal/events"
	"telanix/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserLikes handles GET /api/likes/user/:userId. The payload is a bare
// array of movie IDs; clients mirror it into their local like set.
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	likes, err := s.engagementService.ListLikes(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	movieIDs := make([]uint, 0, len(likes))
	for _, like := range likes {
		movieIDs = append(movieIDs, like.MovieID)
	}
	return models.Respond(c, fiber.StatusOK, movieIDs)
}

// LikeMovie handles POST /api/likes
func (s *Server) LikeMovie(c *fiber.Ctx) error {
	var req struct {
		MovieID uint `json:"movie_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.engagementService.LikeMovie(c.Context(), currentUserID(c), req.MovieID); err != nil {
		return models.RespondWithError(c, err)
	}
	s.publishEvent(c, events.Engagement{Kind: events.KindLike, UserID: currentUserID(c), MovieID: req.MovieID})
	return models.RespondMessage(c, fiber.StatusCreated, nil, "Movie liked")
}

// UnlikeMovie handles DELETE /api/likes/movie/:movieId
func (s *Server) UnlikeMovie(c *fiber.Ctx) error {
	movieID, err := s.parseID(c, "movieId")
	if err != nil {
		return nil
	}

	if err := s.engagementService.UnlikeMovie(c.Context(), currentUserID(c), movieID); err != nil {
		return models.RespondWithError(c, err)
	}
	s.publishEvent(c, events.Engagement{Kind: events.KindUnlike, UserID: currentUserID(c), MovieID: movieID})
	return models.RespondMessage(c, fiber.StatusOK, nil, "Like removed")
}
