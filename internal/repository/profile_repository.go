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

	"socialhub/internal/apperror"
	"socialhub/internal/models"
)

const profileColumns = `p.profile_id, p.user_id, p.username, p.first_name, p.last_name,
		p.birth_date, p.city, p.photo, p.created_at, u.email`

const MsgProfileExists = "You have already created a profile."

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (profile_id, user_id, username, first_name, last_name, birth_date, city, photo, created_at)
		VALUES (:profile_id, :user_id, :username, :first_name, :last_name, :birth_date, :city, :photo, :created_at)
	`

	if profile.ProfileID == "" {
		profile.ProfileID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		if isUniqueViolation(err, "profiles_user_id_key") {
			return apperror.NewValidation(apperror.NonFieldErrors, MsgProfileExists)
		}
		if isForeignKeyViolation(err) {
			return errOwnerGone
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, profileID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.profile_id = $1`

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("profile", profileID)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.user_id = $1`

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, apperror.NotFound("profile of user", userID)
		}
		return nil, fmt.Errorf("get profile by user: %w", err)
	}

	return &profile, nil
}

// List returns every profile matching filter, annotated with followers_count.
func (r *profileRepository) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Username != "" {
		args = append(args, containsPattern(filter.Username))
		conditions = append(conditions, fmt.Sprintf("p.username ILIKE $%d", len(args)))
	}
	if filter.City != "" {
		args = append(args, containsPattern(filter.City))
		conditions = append(conditions, fmt.Sprintf("p.city ILIKE $%d", len(args)))
	}

	query := `SELECT ` + profileColumns + `,
		(SELECT COUNT(*) FROM follows f WHERE f.followee_id = p.profile_id) AS followers_count
		FROM profiles p
		JOIN users u ON u.user_id = p.user_id`
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY p.username, p.profile_id"

	profiles := []models.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			username = :username,
			first_name = :first_name,
			last_name = :last_name,
			birth_date = :birth_date,
			city = :city
		WHERE profile_id = :profile_id
	`

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return expectOneRow(result, "profile", profile.ProfileID)
}

func (r *profileRepository) UpdatePhoto(ctx context.Context, profileID, photo string) error {
	query := `UPDATE profiles SET photo = $1 WHERE profile_id = $2`

	result, err := r.db.ExecContext(ctx, query, photo, profileID)
	if err != nil {
		return fmt.Errorf("update profile photo: %w", err)
	}

	return expectOneRow(result, "profile", profileID)
}

// Delete removes the profile; its follow edges go with it by cascade.
func (r *profileRepository) Delete(ctx context.Context, profileID string) error {
	query := `DELETE FROM profiles WHERE profile_id = $1`

	result, err := r.db.ExecContext(ctx, query, profileID)
	if err != nil {
		if isInvalidID(err) {
			return apperror.NotFound("profile", profileID)
		}
		return fmt.Errorf("delete profile: %w", err)
	}

	return expectOneRow(result, "profile", profileID)
}

func expectOneRow(result sql.Result, entity, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}

	if rowsAffected == 0 {
		return apperror.NotFound(entity, id)
	}

	return nil
}
