package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blog-publishing-api/internal/database"
	"github.com/blog-publishing-api/internal/models"
	"github.com/lib/pq"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post with an empty comment sequence
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, title, text, comment_ids, created_at)
		VALUES ($1, $2, $3, '{}', $4)
	`
	_, err := r.db.ExecContext(ctx, query, post.ID, post.Title, post.Text, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.CommentIDs = []string{}
	return nil
}

func getPost(ctx context.Context, q database.DBTX, id string) (*models.Post, error) {
	query := `SELECT id, title, text, comment_ids, created_at FROM posts WHERE id = $1`

	var post models.Post
	err := q.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Text, pq.Array(&post.CommentIDs), &post.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if post.CommentIDs == nil {
		post.CommentIDs = []string{}
	}

	return &post, nil
}

// GetWithComments retrieves a post and resolves its comment references in
// stored order. Both reads share one repeatable-read snapshot.
func (r *postRepo) GetWithComments(ctx context.Context, id string) (*models.PostWithComments, error) {
	var result *models.PostWithComments

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := r.db.WithTx(ctx, opts, func(ctx context.Context, tx database.DBTX) error {
		post, err := getPost(ctx, tx, id)
		if err != nil || post == nil {
			return err
		}

		comments, err := resolveComments(ctx, tx, post.CommentIDs)
		if err != nil {
			return err
		}

		result = &models.PostWithComments{Post: *post, Comments: comments}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func resolveComments(ctx context.Context, tx database.DBTX, ids []string) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0, len(ids))
	if len(ids) == 0 {
		return comments, nil
	}

	query := `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created_at
		FROM unnest($1::uuid[]) WITH ORDINALITY AS ref(id, ord)
		JOIN comments c ON c.id = ref.id
		JOIN users u ON u.id = c.author_id
		ORDER BY ref.ord
	`
	rows, err := tx.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorUsername, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// List returns all posts in storage order
func (r *postRepo) List(ctx context.Context) ([]*models.PostSummary, error) {
	query := `
		SELECT id, title, text, cardinality(comment_ids), created_at
		FROM posts ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*models.PostSummary, 0)
	for rows.Next() {
		var p models.PostSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Text, &p.CommentCount, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}
