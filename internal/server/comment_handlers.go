package server

import (
	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles PUT /api/posts/comment/:post_id
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Text string `json:"commentContent"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comments, err := s.commentSvc.AddComment(c.UserContext(), service.AddCommentInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Content: req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:post_id/:comment_id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentSvc.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		PostID:    postID,
		CommentID: commentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}
