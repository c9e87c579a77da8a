package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow adds the follower -> followee edge. An existing edge is left as is.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		switch {
		case isCheckViolation(err, "follows_no_self_follow"):
			return apperror.NewValidation(apperror.NonFieldErrors, "You cannot follow yourself.")
		case isForeignKeyViolation(err), isInvalidID(err):
			return apperror.NotFound("profile", followeeID)
		}
		return fmt.Errorf("follow profile: %w", err)
	}

	return nil
}

// Unfollow removes the edge; a missing edge is not an error.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	if _, err := r.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("unfollow profile: %w", err)
	}

	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, followerID, followeeID); err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}

	return exists, nil
}

// Following lists the profiles profileID follows.
func (r *followRepository) Following(ctx context.Context, profileID string) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM follows f
		JOIN profiles p ON p.profile_id = f.followee_id
		JOIN users u ON u.user_id = p.user_id
		WHERE f.follower_id = $1
		ORDER BY p.username, p.profile_id`

	profiles := []models.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, profileID); err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}

	return profiles, nil
}

// Followers lists the profiles following profileID.
func (r *followRepository) Followers(ctx context.Context, profileID string) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM follows f
		JOIN profiles p ON p.profile_id = f.follower_id
		JOIN users u ON u.user_id = p.user_id
		WHERE f.followee_id = $1
		ORDER BY p.username, p.profile_id`

	profiles := []models.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, profileID); err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}

	return profiles, nil
}
