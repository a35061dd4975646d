package mocks

import (
	"context"
	"sync"

	"github.com/blog-publishing-api/internal/models"
	"github.com/blog-publishing-api/internal/repository"
)

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	mu             sync.Mutex
	Users          map[string]*models.User
	UsernameToUser map[string]*models.User
	InsertError    error
	GetError       error
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:          make(map[string]*models.User),
		UsernameToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, exists := m.UsernameToUser[user.Username]; exists {
		return repository.ErrDuplicate
	}
	stored := *user
	m.Users[user.ID] = &stored
	m.UsernameToUser[user.Username] = &stored
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return copyUser(m.UsernameToUser[username]), nil
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return false, m.GetError
	}
	_, exists := m.UsernameToUser[username]
	return exists, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users), nil
}

func (m *MockUserRepository) username(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		return u.Username
	}
	return ""
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// MockPostRepository is an in-memory implementation of PostRepository.
// It also owns comment storage so that a comment and its link from the
// post change under one lock, mirroring the database transaction.
type MockPostRepository struct {
	mu          sync.Mutex
	Posts       map[string]*models.Post
	Order       []string
	Comments    map[string]*models.Comment
	Users       *MockUserRepository // resolves author usernames when set
	InsertError error
	GetError    error
}

// Verify interface compliance
var _ repository.PostRepository = (*MockPostRepository)(nil)

func NewMockPostRepository(users *MockUserRepository) *MockPostRepository {
	return &MockPostRepository{
		Posts:    make(map[string]*models.Post),
		Comments: make(map[string]*models.Comment),
		Users:    users,
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	post.CommentIDs = []string{}
	stored := *post
	stored.CommentIDs = []string{}
	m.Posts[post.ID] = &stored
	m.Order = append(m.Order, post.ID)
	return nil
}

func (m *MockPostRepository) GetWithComments(ctx context.Context, id string) (*models.PostWithComments, error) {
	m.mu.Lock()
	if m.GetError != nil {
		m.mu.Unlock()
		return nil, m.GetError
	}
	p, ok := m.Posts[id]
	if !ok {
		m.mu.Unlock()
		return nil, nil
	}
	result := &models.PostWithComments{Post: *copyPost(p), Comments: make([]*models.Comment, 0, len(p.CommentIDs))}
	for _, cid := range p.CommentIDs {
		c := *m.Comments[cid]
		result.Comments = append(result.Comments, &c)
	}
	m.mu.Unlock()

	if m.Users != nil {
		for _, c := range result.Comments {
			c.AuthorUsername = m.Users.username(c.AuthorID)
		}
	}
	return result, nil
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.PostSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	posts := make([]*models.PostSummary, 0, len(m.Order))
	for _, id := range m.Order {
		p := m.Posts[id]
		posts = append(posts, &models.PostSummary{
			ID:           p.ID,
			Title:        p.Title,
			Text:         p.Text,
			CommentCount: len(p.CommentIDs),
			CreatedAt:    p.CreatedAt,
		})
	}
	return posts, nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Posts), nil
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	c.CommentIDs = append([]string{}, p.CommentIDs...)
	return &c
}

// MockCommentRepository is an in-memory implementation of CommentRepository
// backed by a MockPostRepository
type MockCommentRepository struct {
	Store       *MockPostRepository
	InsertError error // fails before anything is written
	LinkError   error // fails at the append step; the insert is rolled back
}

// Verify interface compliance
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository(store *MockPostRepository) *MockCommentRepository {
	return &MockCommentRepository{Store: store}
}

func (m *MockCommentRepository) CreateOnPost(ctx context.Context, comment *models.Comment) error {
	s := m.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.InsertError != nil {
		return m.InsertError
	}
	post, ok := s.Posts[comment.PostID]
	if !ok {
		return repository.ErrNotFound
	}

	stored := *comment
	stored.AuthorUsername = ""
	s.Comments[comment.ID] = &stored

	if m.LinkError != nil {
		delete(s.Comments, comment.ID)
		return m.LinkError
	}
	post.CommentIDs = append(post.CommentIDs, comment.ID)
	return nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	s := m.Store
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Comments), nil
}

// NewMockRepositories wires the three in-memory repositories together
func NewMockRepositories() (*repository.Repositories, *MockUserRepository, *MockPostRepository, *MockCommentRepository) {
	users := NewMockUserRepository()
	posts := NewMockPostRepository(users)
	comments := NewMockCommentRepository(posts)
	return &repository.Repositories{User: users, Post: posts, Comment: comments}, users, posts, comments
}
