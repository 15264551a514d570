package service

import (
	"context"

	"devconnector/internal/models"
	"devconnector/internal/repository"
)

// CommentService implements comment creation and deletion on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// AddCommentInput carries a new comment payload.
type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

// DeleteCommentInput identifies a comment within a post for removal.
type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, userRepo: userRepo}
}

// AddComment appends a comment with the author's name and avatar copied onto
// it, and returns the post's comments newest first.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) ([]models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Text is required.")
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:       in.PostID,
		UserID:       in.UserID,
		Content:      in.Content,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, in.PostID)
}

// DeleteComment removes the caller's own comment from a post and returns the
// remaining comments. A comment ID that belongs to a different post is
// treated as not found.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("User not authorized.")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, in.PostID)
}
