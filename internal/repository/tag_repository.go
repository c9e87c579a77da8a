package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
)

const msgTagExists = "tag with this word already exists"

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `INSERT INTO tags (tag_id, word) VALUES (:tag_id, :word)`

	if tag.TagID == "" {
		tag.TagID = uuid.New().String()
	}

	_, err := r.db.NamedExecContext(ctx, query, tag)
	if err != nil {
		if isUniqueViolation(err, "tags_word_key") {
			return apperror.NewValidation("word", msgTagExists)
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, tagID string) (*models.Tag, error) {
	query := `SELECT tag_id, word FROM tags WHERE tag_id = $1`

	var tag models.Tag
	err := r.db.GetContext(ctx, &tag, query, tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("tag", tagID)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := `SELECT tag_id, word FROM tags ORDER BY word`

	tags := []models.Tag{}
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := `UPDATE tags SET word = :word WHERE tag_id = :tag_id`

	result, err := r.db.NamedExecContext(ctx, query, tag)
	if err != nil {
		if isUniqueViolation(err, "tags_word_key") {
			return apperror.NewValidation("word", msgTagExists)
		}
		return fmt.Errorf("update tag: %w", err)
	}

	return expectOneRow(result, "tag", tag.TagID)
}

func (r *tagRepository) PostIDs(ctx context.Context, tagID string) ([]string, error) {
	query := `
		SELECT p.post_id
		FROM post_tags pt
		JOIN posts p ON p.post_id = pt.post_id
		WHERE pt.tag_id = $1
		ORDER BY p.created_at
	`

	postIDs := []string{}
	if err := r.db.SelectContext(ctx, &postIDs, query, tagID); err != nil {
		return nil, fmt.Errorf("list tag posts: %w", err)
	}

	return postIDs, nil
}
