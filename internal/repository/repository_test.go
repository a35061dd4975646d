package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blog-publishing-api/internal/mocks"
	"github.com/blog-publishing-api/internal/models"
	"github.com/blog-publishing-api/internal/repository"
)

func TestMockUserRepository_DuplicateUsername(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	// Insert first user
	user1 := &models.User{ID: "user-1", Username: "alice", PasswordHash: "h1", CreatedAt: time.Now()}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Same username is rejected
	user2 := &models.User{ID: "user-2", Username: "alice", PasswordHash: "h2", CreatedAt: time.Now()}
	if err := repo.Create(ctx, user2); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}

	// Usernames are case-sensitive
	user3 := &models.User{ID: "user-3", Username: "Alice", PasswordHash: "h3", CreatedAt: time.Now()}
	if err := repo.Create(ctx, user3); err != nil {
		t.Fatalf("Create for different case failed: %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 2 {
		t.Errorf("Expected 2 users, got %d", count)
	}
}

func TestMockUserRepository_GetByUsername(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	repo.Create(ctx, &models.User{ID: "user-1", Username: "alice", PasswordHash: "h1"})

	stored, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if stored == nil || stored.ID != "user-1" {
		t.Fatalf("Expected user-1, got %+v", stored)
	}

	missing, err := repo.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown username")
	}
}

func TestMockCommentRepository_AppendsInOrder(t *testing.T) {
	repos, _, _, _ := mocks.NewMockRepositories()
	ctx := context.Background()

	post := &models.Post{ID: "post-1", Title: "Hi", Text: "World"}
	if err := repos.Post.Create(ctx, post); err != nil {
		t.Fatalf("Create post failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		c := &models.Comment{ID: fmt.Sprintf("c-%d", i), PostID: "post-1", AuthorID: "user-1", Text: "hey"}
		if err := repos.Comment.CreateOnPost(ctx, c); err != nil {
			t.Fatalf("CreateOnPost failed: %v", err)
		}
	}

	got, _ := repos.Post.GetWithComments(ctx, "post-1")
	if len(got.Comments) != 3 {
		t.Fatalf("Expected 3 comments, got %d", len(got.Comments))
	}
	for i, c := range got.Comments {
		if c.ID != fmt.Sprintf("c-%d", i) {
			t.Errorf("Comment %d out of order: %s", i, c.ID)
		}
	}
}

func TestMockCommentRepository_MissingPost(t *testing.T) {
	repos, _, _, _ := mocks.NewMockRepositories()
	ctx := context.Background()

	err := repos.Comment.CreateOnPost(ctx, &models.Comment{ID: "c-1", PostID: "nope", AuthorID: "user-1", Text: "hey"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	count, _ := repos.Comment.Count(ctx)
	if count != 0 {
		t.Errorf("No comment should be stored, got %d", count)
	}
}

func TestMockCommentRepository_LinkFailureLeavesNoOrphan(t *testing.T) {
	repos, _, _, comments := mocks.NewMockRepositories()
	ctx := context.Background()
	repos.Post.Create(ctx, &models.Post{ID: "post-1", Title: "Hi", Text: "World"})

	comments.LinkError = errors.New("link failed")
	err := repos.Comment.CreateOnPost(ctx, &models.Comment{ID: "c-1", PostID: "post-1", AuthorID: "user-1", Text: "hey"})
	if err == nil {
		t.Fatal("Expected link failure")
	}

	if count, _ := repos.Comment.Count(ctx); count != 0 {
		t.Error("Comment must not exist after a failed link")
	}
	post, _ := repos.Post.GetWithComments(ctx, "post-1")
	if len(post.CommentIDs) != 0 {
		t.Errorf("Post must not reference the failed comment, got %v", post.CommentIDs)
	}
}

func TestMockCommentRepository_ConcurrentAppends(t *testing.T) {
	repos, _, _, _ := mocks.NewMockRepositories()
	ctx := context.Background()
	repos.Post.Create(ctx, &models.Post{ID: "post-1", Title: "Hi", Text: "World"})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repos.Comment.CreateOnPost(ctx, &models.Comment{
				ID: fmt.Sprintf("c-%d", i), PostID: "post-1", AuthorID: "user-1", Text: "hey",
			})
		}(i)
	}
	wg.Wait()

	post, _ := repos.Post.GetWithComments(ctx, "post-1")
	if len(post.CommentIDs) != n {
		t.Fatalf("Expected %d comment references, got %d", n, len(post.CommentIDs))
	}
	seen := make(map[string]bool)
	for _, id := range post.CommentIDs {
		if seen[id] {
			t.Errorf("Duplicate reference %s", id)
		}
		seen[id] = true
	}
}
