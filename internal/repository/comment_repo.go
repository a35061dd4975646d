package repository

import (
	"context"
	"fmt"

	"github.com/blog-publishing-api/internal/database"
	"github.com/blog-publishing-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// CreateOnPost inserts the comment and links it from its post in one
// transaction. array_append runs under the post's row lock, so concurrent
// appends to the same post serialize instead of overwriting each other.
func (r *commentRepo) CreateOnPost(ctx context.Context, comment *models.Comment) error {
	return r.db.WithTx(ctx, nil, func(ctx context.Context, tx database.DBTX) error {
		insert := `
			INSERT INTO comments (id, post_id, author_id, text, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := tx.ExecContext(ctx, insert,
			comment.ID, comment.PostID, comment.AuthorID, comment.Text, comment.CreatedAt,
		)
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE posts SET comment_ids = array_append(comment_ids, $1) WHERE id = $2`,
			comment.ID, comment.PostID,
		)
		if err != nil {
			return fmt.Errorf("link comment to post: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("link comment to post: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
