package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/models"
	"socialhub/internal/presenter"
	"socialhub/internal/service"
)

type CreatePostRequest struct {
	Text string   `json:"text" validate:"required"`
	Tags []string `json:"tags"`
}

// PatchPostRequest leaves absent fields unchanged.
type PatchPostRequest struct {
	Text *string   `json:"text" validate:"omitempty,min=1"`
	Tags *[]string `json:"tags"`
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := service.ParsePostFilter(query.Get("tag"), query.Get("date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	posts, err := h.PostService.ListPosts(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Posts(posts, presenter.ActionList), http.StatusOK)
}

func (h *Handlers) MyPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.MyPosts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Posts(posts, presenter.ActionMyPosts), http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Post(*post, presenter.ActionRetrieve), http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !h.decode(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), models.CreatePostRequest{
		Text:   req.Text,
		TagIDs: req.Tags,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Post(*post, presenter.ActionCreate), http.StatusCreated)
}

// UpdatePost serves PUT: text is required, tags are replaced only when sent.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !h.decode(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	update := models.UpdatePostRequest{Text: &req.Text}
	if req.Tags != nil {
		update.TagIDs = &req.Tags
	}

	h.updatePost(w, r, update, presenter.ActionUpdate)
}

func (h *Handlers) PatchPost(w http.ResponseWriter, r *http.Request) {
	var req PatchPostRequest
	if !h.decode(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	h.updatePost(w, r, models.UpdatePostRequest{Text: req.Text, TagIDs: req.Tags}, presenter.ActionPartialUpdate)
}

func (h *Handlers) updatePost(w http.ResponseWriter, r *http.Request, req models.UpdatePostRequest, action presenter.Action) {
	post, err := h.PostService.UpdatePost(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Post(*post, action), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.PostService.DeletePost(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
