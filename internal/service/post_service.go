package service

import (
	"context"

	"devconnector/internal/models"
	"devconnector/internal/repository"
)

// PostService implements post creation, deletion and like semantics.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// CreatePostInput carries a new post payload.
type CreatePostInput struct {
	UserID  uint
	Content string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePost stores a new post with the author's name and avatar copied onto
// it, so the feed renders without joining users.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Text is required.")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:       in.UserID,
		Content:      in.Content,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a single post with its likes and comments.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// ListPosts returns the feed newest first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// DeletePost removes a post owned by the caller. Non-owners get a forbidden
// error, checked after existence so a missing post is still a 404.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("User not authorized.")
	}
	return s.postRepo.Delete(ctx, postID)
}

// LikePost records the caller's like and returns the post's likes newest
// first. Liking a post twice is rejected.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	ok, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewConflictError("Post already liked.")
	}
	return s.postRepo.ListLikes(ctx, postID)
}

// UnlikePost removes the caller's like and returns the remaining likes.
// Unliking a post the caller never liked is rejected.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	ok, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewConflictError("Post has not yet been liked.")
	}
	return s.postRepo.ListLikes(ctx, postID)
}
