package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
	"socialhub/internal/presenter"
	"socialhub/internal/service"
)

// multipart framing allowed on top of the photo itself
const uploadOverhead = 1 << 20

// Date is a nullable YYYY-MM-DD field that remembers whether it was sent.
type Date struct {
	Set   bool
	Value *time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	d.Set = true
	if string(data) == "null" {
		d.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperror.NewValidation("birth_date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	if raw == "" {
		d.Value = nil
		return nil
	}

	day, err := time.ParseInLocation(service.DateLayout, raw, time.UTC)
	if err != nil {
		return apperror.NewValidation("birth_date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	d.Value = &day
	return nil
}

type ProfileRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	BirthDate Date   `json:"birth_date"`
	City      string `json:"city" validate:"max=100"`
}

// PatchProfileRequest leaves absent fields unchanged.
type PatchProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=1,max=150"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	BirthDate Date    `json:"birth_date"`
	City      *string `json:"city" validate:"omitempty,max=100"`
}

// decodeProfile reports a malformed birth_date as a field error rather
// than a generic bad body.
func (h *Handlers) decodeProfile(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		writeServiceError(w, r, vErr)
	} else {
		WriteError(w, "invalid request body", http.StatusBadRequest)
	}
	return false
}

func (h *Handlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := service.ParseProfileFilter(query.Get("username"), query.Get("city"))

	profiles, err := h.ProfileService.ListProfiles(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Profiles(profiles, presenter.ActionList), http.StatusOK)
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	detail, err := h.ProfileService.GetProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Detail(*detail), http.StatusOK)
}

func (h *Handlers) MyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileService.MyProfile(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Profile(*profile, presenter.ActionMe), http.StatusOK)
}

func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !h.decodeProfile(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	profile, err := h.ProfileService.CreateProfile(r.Context(), models.CreateProfileRequest{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate.Value,
		City:      req.City,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Profile(*profile, presenter.ActionCreate), http.StatusCreated)
}

// UpdateProfile serves PUT: every field is rewritten, absent ones to empty.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !h.decodeProfile(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	h.updateProfile(w, r, models.UpdateProfileRequest{
		Username:     &req.Username,
		FirstName:    &req.FirstName,
		LastName:     &req.LastName,
		BirthDate:    req.BirthDate.Value,
		SetBirthDate: true,
		City:         &req.City,
	}, presenter.ActionUpdate)
}

func (h *Handlers) PatchProfile(w http.ResponseWriter, r *http.Request) {
	var req PatchProfileRequest
	if !h.decodeProfile(w, r, &req) || !h.validate(w, r, req) {
		return
	}

	h.updateProfile(w, r, models.UpdateProfileRequest{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate.Value,
		SetBirthDate: req.BirthDate.Set,
		City:         req.City,
	}, presenter.ActionPartialUpdate)
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request, req models.UpdateProfileRequest, action presenter.Action) {
	profile, err := h.ProfileService.UpdateProfile(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Profile(*profile, action), http.StatusOK)
}

func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.ProfileService.DeleteProfile(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Following(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.ProfileService.Following(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Profiles(profiles, presenter.ActionFollowing), http.StatusOK)
}

func (h *Handlers) Followers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.ProfileService.Followers(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Profiles(profiles, presenter.ActionFollowers), http.StatusOK)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	if err := h.ProfileService.Follow(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	if err := h.ProfileService.Unfollow(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto reads the multipart field "photo"; content checks happen in the service.
func (h *Handlers) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	maxSize := h.Cfg.MaxUploadSize
	tooLarge := apperror.NewValidation("photo", fmt.Sprintf("File is larger than %s.", humanize.Bytes(uint64(maxSize))))

	r.Body = http.MaxBytesReader(w, r.Body, maxSize+uploadOverhead)
	if err := r.ParseMultipartForm(maxSize + uploadOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeServiceError(w, r, tooLarge)
			return
		}
		writeServiceError(w, r, apperror.NewValidation("photo", "The submitted data was not a file."))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeServiceError(w, r, apperror.NewValidation("photo", "No file was submitted."))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("read photo: %w", err))
		return
	}
	if int64(len(content)) > maxSize {
		writeServiceError(w, r, tooLarge)
		return
	}

	profile, err := h.ProfileService.UploadPhoto(r.Context(), mux.Vars(r)["id"], service.PhotoUpload{
		FileName: header.Filename,
		Content:  content,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, presenter.Profile(*profile, presenter.ActionUploadPhoto), http.StatusOK)
}
