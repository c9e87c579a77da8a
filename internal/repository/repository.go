package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"socialhub/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, profileID string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdatePhoto(ctx context.Context, profileID, photo string) error
	Delete(ctx context.Context, profileID string) error
}

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	Following(ctx context.Context, profileID string) ([]models.Profile, error)
	Followers(ctx context.Context, profileID string) ([]models.Profile, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagIDs []string) error
	GetVisibleByID(ctx context.Context, userID, postID string) (*models.Post, error)
	ListVisible(ctx context.Context, userID string, filter models.PostFilter) ([]models.Post, error)
	ListByUserID(ctx context.Context, userID string) ([]models.Post, error)
	// Update rewrites the text and, when tagIDs is non-nil, replaces the tag set.
	Update(ctx context.Context, post *models.Post, tagIDs []string) error
	Delete(ctx context.Context, postID string) error
}

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, tagID string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	PostIDs(ctx context.Context, tagID string) ([]string, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
	CountRows(ctx context.Context) (map[string]int, error)
}

type Repository struct {
	User    UserRepository
	Profile ProfileRepository
	Follow  FollowRepository
	Post    PostRepository
	Tag     TagRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Profile: NewProfileRepository(db),
		Follow:  NewFollowRepository(db),
		Post:    NewPostRepository(db),
		Tag:     NewTagRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
