package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
	"socialhub/internal/presenter"
)

var testPost = models.Post{
	PostID:    "post-1",
	UserID:    "user-1",
	Text:      "a rather long text that needs a preview",
	CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	Author:    "alice",
	Tags:      []models.Tag{{TagID: "tag-1", Word: "go"}},
}

func TestListPosts_Filters(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	h, m := createTestHandler()
	m.post.On("ListPosts", mock.Anything, models.PostFilter{Tag: "go", Date: &day}).
		Return([]models.Post{testPost}, nil)

	rr := serve(h, http.MethodGet, "/api/posts?tag=go&date=2024-03-01", nil, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var posts []presenter.PostList
	decodeBody(t, rr, &posts)
	if assert.Len(t, posts, 1) {
		assert.Equal(t, "post-1", posts[0].ID)
		assert.Equal(t, "alice", posts[0].User)
		assert.Equal(t, "a rather long text t...", posts[0].TextPreview)
	}
}

func TestListPosts_BadDate(t *testing.T) {
	h, m := createTestHandler()

	rr := serve(h, http.MethodGet, "/api/posts?date=01-03-2024", nil, "")

	assertFieldError(t, rr, "date", "YYYY-MM-DD")
	m.post.AssertNotCalled(t, "ListPosts", mock.Anything, mock.Anything)
}

func TestMyPosts(t *testing.T) {
	h, m := createTestHandler()
	m.post.On("MyPosts", mock.Anything).Return([]models.Post{testPost}, nil)

	rr := serve(h, http.MethodGet, "/api/posts/my_posts", nil, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var posts []presenter.PostDefault
	decodeBody(t, rr, &posts)
	if assert.Len(t, posts, 1) {
		assert.Equal(t, testPost.Text, posts[0].Text)
		assert.Equal(t, []string{"tag-1"}, posts[0].Tags)
	}
}

func TestGetPost(t *testing.T) {
	h, m := createTestHandler()
	m.post.On("GetPost", mock.Anything, "post-1").Return(&testPost, nil)
	m.post.On("GetPost", mock.Anything, "hidden").Return(nil, apperror.NotFound("post", "hidden"))

	rr := serve(h, http.MethodGet, "/api/posts/post-1", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var post presenter.PostDetail
	decodeBody(t, rr, &post)
	assert.Equal(t, testPost.Text, post.Text)

	rr = serve(h, http.MethodGet, "/api/posts/hidden", nil, "")
	assertJSONError(t, rr, http.StatusNotFound, "not found")
}

func TestCreatePost(t *testing.T) {
	h, m := createTestHandler()
	m.post.On("CreatePost", mock.Anything, models.CreatePostRequest{
		Text:   "hello",
		TagIDs: []string{"tag-1"},
	}).Return(&testPost, nil)

	rr := serveJSON(h, http.MethodPost, "/api/posts", map[string]interface{}{
		"text": "hello",
		"tags": []string{"tag-1"},
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	m.post.AssertExpectations(t)
}

func TestCreatePost_MissingText(t *testing.T) {
	h, m := createTestHandler()

	rr := serveJSON(h, http.MethodPost, "/api/posts", map[string]interface{}{"tags": []string{}})

	assertFieldError(t, rr, "text", "required")
	m.post.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestUpdatePost_KeepsTagsWhenAbsent(t *testing.T) {
	h, m := createTestHandler()
	text := "edited"
	m.post.On("UpdatePost", mock.Anything, "post-1", models.UpdatePostRequest{Text: &text}).
		Return(&testPost, nil)

	rr := serveJSON(h, http.MethodPut, "/api/posts/post-1", map[string]string{"text": "edited"})

	assert.Equal(t, http.StatusOK, rr.Code)
	m.post.AssertExpectations(t)
}

func TestPatchPost_Forbidden(t *testing.T) {
	h, m := createTestHandler()
	tags := []string{}
	m.post.On("UpdatePost", mock.Anything, "post-2", models.UpdatePostRequest{TagIDs: &tags}).
		Return(nil, apperror.ErrForbidden)

	rr := serveJSON(h, http.MethodPatch, "/api/posts/post-2", map[string]interface{}{"tags": []string{}})

	assertJSONError(t, rr, http.StatusForbidden, "permission")
}

func TestPatchPost_EmptyText(t *testing.T) {
	h, m := createTestHandler()

	rr := serveJSON(h, http.MethodPatch, "/api/posts/post-1", map[string]string{"text": ""})

	assertFieldError(t, rr, "text", "at least 1")
	m.post.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePost(t *testing.T) {
	h, m := createTestHandler()
	m.post.On("DeletePost", mock.Anything, "post-1").Return(nil)

	rr := serve(h, http.MethodDelete, "/api/posts/post-1", nil, "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}
