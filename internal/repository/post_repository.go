package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
)

const postSelect = `SELECT p.post_id, p.user_id, p.text, p.created_at, COALESCE(pr.username, '') AS author
		FROM posts p
		LEFT JOIN profiles pr ON pr.user_id = p.user_id`

// visibleTo is the visibility rule for the actor bound to $1: own posts plus
// posts of users whose profile the actor's profile follows.
const visibleTo = `(p.user_id = $1 OR p.user_id IN (
			SELECT followee.user_id
			FROM follows f
			JOIN profiles follower ON follower.profile_id = f.follower_id
			JOIN profiles followee ON followee.profile_id = f.followee_id
			WHERE follower.user_id = $1))`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

type postTagRow struct {
	PostID string `db:"post_id"`
	TagID  string `db:"tag_id"`
	Word   string `db:"word"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post, tagIDs []string) error {
	query := `
		INSERT INTO posts (post_id, user_id, text, created_at)
		VALUES (:post_id, :user_id, :text, :created_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	// created_at is set once here and never written again
	post.CreatedAt = time.Now().UTC()

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create post: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.NamedExecContext(ctx, query, post); err != nil {
		if isForeignKeyViolation(err) {
			return errOwnerGone
		}
		return fmt.Errorf("create post: %w", err)
	}

	tags, err := insertPostTags(ctx, tx, post.PostID, tagIDs)
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create post: %w", err)
	}

	post.Tags = tags
	return nil
}

// GetVisibleByID returns the post only when it is in userID's visible set.
func (r *PostRepositoryImpl) GetVisibleByID(ctx context.Context, userID, postID string) (*models.Post, error) {
	query := postSelect + `
		WHERE p.post_id = $2 AND ` + visibleTo

	return r.getOne(ctx, query, postID, userID, postID)
}

func (r *PostRepositoryImpl) getOne(ctx context.Context, query, postID string, args ...interface{}) (*models.Post, error) {
	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("post", postID)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	posts := []models.Post{post}
	if err = r.attachTags(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[0], nil
}

// ListVisible applies the visibility rule for userID and then the filters,
// ordered by creation time. Tags are not loaded.
func (r *PostRepositoryImpl) ListVisible(ctx context.Context, userID string, filter models.PostFilter) ([]models.Post, error) {
	args := []interface{}{userID}
	conditions := []string{visibleTo}

	if filter.Tag != "" {
		args = append(args, containsPattern(filter.Tag))
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM post_tags pt
			JOIN tags t ON t.tag_id = pt.tag_id
			WHERE pt.post_id = p.post_id AND t.word ILIKE $%d)`, len(args)))
	}

	if filter.Date != nil {
		y, m, d := filter.Date.Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
		conditions = append(conditions, fmt.Sprintf("p.created_at >= $%d AND p.created_at < $%d", len(args)-1, len(args)))
	}

	query := postSelect + `
		WHERE ` + strings.Join(conditions, "\n\t\tAND ") + `
		ORDER BY p.created_at, p.post_id`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("list visible posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	query := postSelect + `
		WHERE p.user_id = $1
		ORDER BY p.created_at, p.post_id`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}

	if err := r.attachTags(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post, tagIDs []string) error {
	query := `UPDATE posts SET text = :text WHERE post_id = :post_id`

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update post: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if err = expectOneRow(result, "post", post.PostID); err != nil {
		return err
	}

	if tagIDs != nil {
		if _, err = tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, post.PostID); err != nil {
			return fmt.Errorf("clear post tags: %w", err)
		}

		tags, err := insertPostTags(ctx, tx, post.PostID, tagIDs)
		if err != nil {
			return err
		}
		post.Tags = tags
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update post: %w", err)
	}

	return nil
}

// Delete removes the post and its tag links; the tags themselves stay.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		if isInvalidID(err) {
			return apperror.NotFound("post", postID)
		}
		return fmt.Errorf("delete post: %w", err)
	}

	return expectOneRow(result, "post", postID)
}

func insertPostTags(ctx context.Context, tx *sqlx.Tx, postID string, tagIDs []string) ([]models.Tag, error) {
	query := `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`

	seen := make(map[string]bool, len(tagIDs))
	tags := make([]models.Tag, 0, len(tagIDs))

	for _, tagID := range tagIDs {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true

		if _, err := tx.ExecContext(ctx, query, postID, tagID); err != nil {
			if isForeignKeyViolation(err) || isInvalidID(err) {
				return nil, apperror.NewValidation("tags", fmt.Sprintf("Invalid pk %q - object does not exist.", tagID))
			}
			return nil, fmt.Errorf("link post tag: %w", err)
		}
		tags = append(tags, models.Tag{TagID: tagID})
	}

	return tags, nil
}

// attachTags loads the tags of every post in one query.
func (r *PostRepositoryImpl) attachTags(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	index := make(map[string]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].PostID
		index[posts[i].PostID] = i
		posts[i].Tags = []models.Tag{}
	}

	query := `
		SELECT pt.post_id, t.tag_id, t.word
		FROM post_tags pt
		JOIN tags t ON t.tag_id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.word
	`

	var rows []postTagRow
	if err := r.DB.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}

	for _, row := range rows {
		i := index[row.PostID]
		posts[i].Tags = append(posts[i].Tags, models.Tag{TagID: row.TagID, Word: row.Word})
	}

	return nil
}
