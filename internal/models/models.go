package models

import (
	"time"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID string
	Email  string
}

func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

type Profile struct {
	ProfileID string     `db:"profile_id"`
	UserID    string     `db:"user_id"`
	Username  string     `db:"username"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	BirthDate *time.Time `db:"birth_date"`
	City      string     `db:"city"`
	Photo     string     `db:"photo"`
	CreatedAt time.Time  `db:"created_at"`

	// joined / computed columns
	Email          string `db:"email"`
	FollowersCount int    `db:"followers_count"`
}

// ProfileDetail is a profile with its owner's posts and its followers resolved.
type ProfileDetail struct {
	Profile   Profile
	Posts     []Post
	Followers []Profile
}

type Post struct {
	PostID    string    `db:"post_id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`

	// Author is the owner's profile username, empty when the owner has no profile.
	Author string `db:"author"`
	Tags   []Tag  `db:"-"`
}

type Tag struct {
	TagID string `db:"tag_id"`
	Word  string `db:"word"`
}

// TagDetail is a tag together with the ids of the posts referencing it.
type TagDetail struct {
	Tag     Tag
	PostIDs []string
}

// PostFilter narrows a post listing. Zero values mean "no filter".
type PostFilter struct {
	Tag  string
	Date *time.Time
}

// ProfileFilter narrows a profile listing. Zero values mean "no filter".
type ProfileFilter struct {
	Username string
	City     string
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateProfileRequest struct {
	Username  string     `json:"username"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date"`
	City      string     `json:"city"`
}

// UpdateProfileRequest uses nil fields for "leave unchanged" (PATCH).
type UpdateProfileRequest struct {
	Username     *string
	FirstName    *string
	LastName     *string
	BirthDate    *time.Time
	SetBirthDate bool
	City         *string
}

type CreatePostRequest struct {
	Text   string   `json:"text"`
	TagIDs []string `json:"tags"`
}

// UpdatePostRequest uses nil fields for "leave unchanged" (PATCH).
type UpdatePostRequest struct {
	Text   *string
	TagIDs *[]string
}
