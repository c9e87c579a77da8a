package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/presenter"
)

type TagRequest struct {
	Word string `json:"word" validate:"required,max=30"`
}

type PatchTagRequest struct {
	Word *string `json:"word" validate:"omitempty,min=1,max=30"`
}

func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.ListTags(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Tags(tags), http.StatusOK)
}

func (h *Handlers) GetTag(w http.ResponseWriter, r *http.Request) {
	detail, err := h.TagService.GetTag(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.TagDetailShape(*detail), http.StatusOK)
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if !h.decode(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	tag, err := h.TagService.CreateTag(r.Context(), req.Word)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.TagShape(*tag), http.StatusCreated)
}

func (h *Handlers) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if !h.decode(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	h.updateTag(w, r, &req.Word)
}

func (h *Handlers) PatchTag(w http.ResponseWriter, r *http.Request) {
	var req PatchTagRequest
	if !h.decode(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	h.updateTag(w, r, req.Word)
}

func (h *Handlers) updateTag(w http.ResponseWriter, r *http.Request, word *string) {
	tag, err := h.TagService.UpdateTag(r.Context(), mux.Vars(r)["id"], word)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.TagShape(*tag), http.StatusOK)
}
