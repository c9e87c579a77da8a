// Package presenter turns domain values into the JSON shapes each API
// operation responds with.
package presenter

import (
	"time"

	"socialhub/internal/models"
)

type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionMyPosts       Action = "my_posts"
	ActionMe            Action = "me"
	ActionFollowing     Action = "following"
	ActionFollowers     Action = "followers"
	ActionUploadPhoto   Action = "upload_photo"
)

type Shape int

const (
	ShapeDefault Shape = iota
	ShapeList
	ShapeDetail
	ShapeImage
)

// ShapeFor selects the response shape of an action.
func ShapeFor(action Action) Shape {
	switch action {
	case ActionList:
		return ShapeList
	case ActionRetrieve:
		return ShapeDetail
	case ActionUploadPhoto:
		return ShapeImage
	default:
		return ShapeDefault
	}
}

const (
	previewLength = 20
	dateLayout    = "2006-01-02"
)

type PostDefault struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags"`
}

type PostList struct {
	ID          string    `json:"id"`
	TextPreview string    `json:"text_preview"`
	CreatedAt   time.Time `json:"created_at"`
	User        string    `json:"user"`
}

type PostDetail struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	User      string    `json:"user"`
}

type ProfileDefault struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	BirthDate *string `json:"birth_date"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	City      string  `json:"city"`
}

type ProfileList struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	City           string `json:"city"`
	FollowersCount int    `json:"followers_count"`
}

type ProfileDetail struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	BirthDate *string          `json:"birth_date"`
	City      string           `json:"city"`
	Posts     []PostList       `json:"posts"`
	Followers []ProfileDefault `json:"followers"`
}

type ProfileImage struct {
	ID    string `json:"id"`
	Photo string `json:"photo"`
}

type Tag struct {
	ID   string `json:"id"`
	Word string `json:"word"`
}

type TagDetail struct {
	ID    string   `json:"id"`
	Word  string   `json:"word"`
	Posts []string `json:"posts"`
}

// TextPreview cuts text to its first 20 characters, marking the cut with "...".
func TextPreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}

func Post(post models.Post, action Action) interface{} {
	switch ShapeFor(action) {
	case ShapeList:
		return postList(post)
	case ShapeDetail:
		words := make([]string, 0, len(post.Tags))
		for _, tag := range post.Tags {
			words = append(words, tag.Word)
		}
		return PostDetail{
			ID:        post.PostID,
			Text:      post.Text,
			Tags:      words,
			CreatedAt: post.CreatedAt,
			User:      post.Author,
		}
	default:
		ids := make([]string, 0, len(post.Tags))
		for _, tag := range post.Tags {
			ids = append(ids, tag.TagID)
		}
		return PostDefault{
			ID:        post.PostID,
			User:      post.UserID,
			Text:      post.Text,
			CreatedAt: post.CreatedAt,
			Tags:      ids,
		}
	}
}

func Posts(posts []models.Post, action Action) []interface{} {
	out := make([]interface{}, 0, len(posts))
	for _, post := range posts {
		out = append(out, Post(post, action))
	}
	return out
}

func postList(post models.Post) PostList {
	return PostList{
		ID:          post.PostID,
		TextPreview: TextPreview(post.Text),
		CreatedAt:   post.CreatedAt,
		User:        post.Author,
	}
}

func Profile(profile models.Profile, action Action) interface{} {
	switch ShapeFor(action) {
	case ShapeList:
		return ProfileList{
			ID:             profile.ProfileID,
			Username:       profile.Username,
			FirstName:      profile.FirstName,
			LastName:       profile.LastName,
			City:           profile.City,
			FollowersCount: profile.FollowersCount,
		}
	case ShapeImage:
		return ProfileImage{ID: profile.ProfileID, Photo: profile.Photo}
	default:
		return profileDefault(profile)
	}
}

func Profiles(profiles []models.Profile, action Action) []interface{} {
	out := make([]interface{}, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, Profile(profile, action))
	}
	return out
}

// Detail renders the retrieve shape of a profile.
func Detail(detail models.ProfileDetail) ProfileDetail {
	posts := make([]PostList, 0, len(detail.Posts))
	for _, post := range detail.Posts {
		posts = append(posts, postList(post))
	}

	followers := make([]ProfileDefault, 0, len(detail.Followers))
	for _, follower := range detail.Followers {
		followers = append(followers, profileDefault(follower))
	}

	p := detail.Profile
	return ProfileDetail{
		ID:        p.ProfileID,
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: formatDate(p.BirthDate),
		City:      p.City,
		Posts:     posts,
		Followers: followers,
	}
}

func profileDefault(profile models.Profile) ProfileDefault {
	return ProfileDefault{
		ID:        profile.ProfileID,
		Username:  profile.Username,
		Email:     profile.Email,
		BirthDate: formatDate(profile.BirthDate),
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		City:      profile.City,
	}
}

func TagShape(tag models.Tag) Tag {
	return Tag{ID: tag.TagID, Word: tag.Word}
}

func Tags(tags []models.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagShape(tag))
	}
	return out
}

func TagDetailShape(detail models.TagDetail) TagDetail {
	posts := detail.PostIDs
	if posts == nil {
		posts = []string{}
	}
	return TagDetail{ID: detail.Tag.TagID, Word: detail.Tag.Word, Posts: posts}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
