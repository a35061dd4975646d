package service

import (
	"context"

	"github.com/blog-publishing-api/internal/models"
	"github.com/blog-publishing-api/internal/repository"
)

type statsService struct {
	repos *repository.Repositories
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{repos: repos}
}

// Stats counts users, posts and comments
func (s *statsService) Stats(ctx context.Context) (*models.Stats, error) {
	var (
		stats models.Stats
		err   error
	)
	if stats.Users, err = s.repos.User.Count(ctx); err != nil {
		return nil, serverError(CodeStorage, "count users", err)
	}
	if stats.Posts, err = s.repos.Post.Count(ctx); err != nil {
		return nil, serverError(CodeStorage, "count posts", err)
	}
	if stats.Comments, err = s.repos.Comment.Count(ctx); err != nil {
		return nil, serverError(CodeStorage, "count comments", err)
	}
	return &stats, nil
}
