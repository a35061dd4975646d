package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blog-publishing-api/internal/models"
	"github.com/blog-publishing-api/internal/repository"
	"github.com/blog-publishing-api/internal/session"
	"github.com/blog-publishing-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	posts     repository.PostRepository
	comments  repository.CommentRepository
	validator *validation.Validator
	log       zerolog.Logger
}

// newContentService creates a new ContentService
func newContentService(repos *repository.Repositories, log zerolog.Logger) *contentService {
	return &contentService{
		posts:     repos.Post,
		comments:  repos.Comment,
		validator: validation.NewValidator(),
		log:       log.With().Str("service", "content").Logger(),
	}
}

// CreatePost stores a post with an empty comment sequence
func (s *contentService) CreatePost(ctx context.Context, author session.Identity, title, text string) (string, error) {
	if errs := s.validator.ValidatePost(title, text); len(errs) > 0 {
		return "", validationFailed(errs)
	}

	post := &models.Post{
		ID:         uuid.New().String(),
		Title:      title,
		Text:       text,
		CommentIDs: []string{},
		CreatedAt:  time.Now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return "", serverError(CodeStorage, "create post", err)
	}

	s.log.Info().
		Str("post_id", post.ID).
		Str("user_id", author.UserID).
		Msg("Post created")

	return post.ID, nil
}

// ListPosts returns all posts in storage order
func (s *contentService) ListPosts(ctx context.Context) ([]*models.PostSummary, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, serverError(CodeStorage, "list posts", err)
	}
	return posts, nil
}

// GetPost returns the post with its comments resolved in sequence order
func (s *contentService) GetPost(ctx context.Context, postID string) (*models.PostWithComments, error) {
	if !validation.IsValidID(postID) {
		return nil, ErrPostNotFound
	}

	post, err := s.posts.GetWithComments(ctx, postID)
	if err != nil {
		return nil, serverError(CodeStorage, "get post", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// AddComment trims and validates text, then creates the comment and
// appends it to the post's sequence in one step
func (s *contentService) AddComment(ctx context.Context, author session.Identity, postID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if errs := s.validator.ValidateComment(text); len(errs) > 0 {
		return "", validationFailed(errs)
	}
	if !validation.IsValidID(postID) {
		return "", ErrPostNotFound
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  author.UserID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.comments.CreateOnPost(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPostNotFound
		}
		return "", serverError(CodeStorage, "add comment", err)
	}

	s.log.Info().
		Str("post_id", postID).
		Str("comment_id", comment.ID).
		Str("user_id", author.UserID).
		Msg("Comment added")

	return comment.ID, nil
}
