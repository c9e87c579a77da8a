package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"

	"socialhub/internal/apperror"
	"socialhub/internal/config"
	"socialhub/internal/models"
	"socialhub/internal/monitoring"
	"socialhub/internal/repository"
	"socialhub/internal/storage"
)

const (
	msgProfileRequired = "You must create a profile first."
	msgSelfFollow      = "You cannot follow yourself."
)

var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// PhotoUpload is a received photo file, already read into memory.
type PhotoUpload struct {
	FileName string
	Content  []byte
}

type ProfileService interface {
	ListProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error)
	GetProfile(ctx context.Context, profileID string) (*models.ProfileDetail, error)
	MyProfile(ctx context.Context) (*models.Profile, error)
	CreateProfile(ctx context.Context, req models.CreateProfileRequest) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profileID string, req models.UpdateProfileRequest) (*models.Profile, error)
	DeleteProfile(ctx context.Context, profileID string) error
	UploadPhoto(ctx context.Context, profileID string, upload PhotoUpload) (*models.Profile, error)

	Follow(ctx context.Context, profileID string) error
	Unfollow(ctx context.Context, profileID string) error
	Following(ctx context.Context, profileID string) ([]models.Profile, error)
	Followers(ctx context.Context, profileID string) ([]models.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	storage     storage.Storage
	cfg         *config.Config
	permission  Permission
	follows     Permission
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	storage storage.Storage,
	cfg *config.Config,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
		storage:     storage,
		cfg:         cfg,
		permission:  ReadOnlyOrOwner{},
		follows:     AuthenticatedOnly{},
	}
}

func (s *profileService) ListProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error) {
	if err := s.permission.HasPermission(ActorFromContext(ctx), OpList); err != nil {
		return nil, err
	}

	return s.profileRepo.List(ctx, filter)
}

// GetProfile resolves the followers and, when the caller owns or follows the
// profile, the owner's posts.
func (s *profileService) GetProfile(ctx context.Context, profileID string) (*models.ProfileDetail, error) {
	actor := ActorFromContext(ctx)
	if err := s.permission.HasPermission(actor, OpRetrieve); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	detail := &models.ProfileDetail{
		Profile:   *profile,
		Posts:     []models.Post{},
		Followers: []models.Profile{},
	}

	visible, err := s.postsVisible(ctx, actor, profile)
	if err != nil {
		return nil, err
	}
	if visible {
		if detail.Posts, err = s.postRepo.ListByUserID(ctx, profile.UserID); err != nil {
			return nil, err
		}
	}

	if detail.Followers, err = s.followRepo.Followers(ctx, profile.ProfileID); err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *profileService) postsVisible(ctx context.Context, actor models.Actor, profile *models.Profile) (bool, error) {
	if profile.UserID == actor.UserID {
		return true, nil
	}

	own, err := s.profileRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return s.followRepo.IsFollowing(ctx, own.ProfileID, profile.ProfileID)
}

func (s *profileService) MyProfile(ctx context.Context) (*models.Profile, error) {
	actor := ActorFromContext(ctx)
	if err := s.permission.HasPermission(actor, OpRetrieve); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, actor.UserID)
}

// CreateProfile creates the caller's single profile. A second attempt is a
// ValidationError raised by the one-profile-per-user constraint.
func (s *profileService) CreateProfile(ctx context.Context, req models.CreateProfileRequest) (*models.Profile, error) {
	actor := ActorFromContext(ctx)
	if err := s.permission.HasPermission(actor, OpCreate); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:    actor.UserID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		City:      req.City,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByID(ctx, profile.ProfileID)
}

func (s *profileService) UpdateProfile(ctx context.Context, profileID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.getOwned(ctx, profileID, OpUpdate)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		profile.Username = *req.Username
	}
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.SetBirthDate {
		profile.BirthDate = req.BirthDate
	}
	if req.City != nil {
		profile.City = *req.City
	}

	if err = s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, profileID string) error {
	profile, err := s.getOwned(ctx, profileID, OpDelete)
	if err != nil {
		return err
	}

	if err = s.profileRepo.Delete(ctx, profile.ProfileID); err != nil {
		return err
	}

	removePhoto(ctx, s.storage, profile.Photo)
	return nil
}

// UploadPhoto stores a new photo for the profile and replaces the old one.
func (s *profileService) UploadPhoto(ctx context.Context, profileID string, upload PhotoUpload) (*models.Profile, error) {
	profile, err := s.getOwned(ctx, profileID, OpUpdate)
	if err != nil {
		return nil, err
	}

	if len(upload.Content) == 0 {
		return nil, apperror.NewValidation("photo", "The submitted file is empty.")
	}
	if s.cfg.MaxUploadSize > 0 && int64(len(upload.Content)) > s.cfg.MaxUploadSize {
		return nil, apperror.NewValidation("photo", fmt.Sprintf("File is larger than %s.", humanize.Bytes(uint64(s.cfg.MaxUploadSize))))
	}

	mtype := mimetype.Detect(upload.Content)
	if !mimetype.EqualsAny(mtype.String(), allowedPhotoTypes...) {
		return nil, apperror.NewValidation("photo", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	objectName := storage.PhotoObjectName(profile.Username, upload.FileName, mtype.Extension())
	size := int64(len(upload.Content))

	url, err := s.storage.UploadPhoto(ctx, objectName, bytes.NewReader(upload.Content), size, mtype.String())
	if err != nil {
		return nil, err
	}

	if err = s.profileRepo.UpdatePhoto(ctx, profile.ProfileID, url); err != nil {
		if delErr := s.storage.DeleteObject(ctx, objectName); delErr != nil {
			log.WithError(delErr).WithField("object", objectName).Warn("failed to remove orphaned photo")
		}
		return nil, err
	}

	removePhoto(ctx, s.storage, profile.Photo)
	monitoring.PhotoUploadBytes.Observe(float64(size))

	log.WithFields(log.Fields{
		"profile_id": profile.ProfileID,
		"object":     objectName,
		"size":       humanize.Bytes(uint64(size)),
	}).Info("profile photo uploaded")

	profile.Photo = url
	return profile, nil
}

// Follow makes the caller's profile follow profileID. Repeating it is a no-op.
func (s *profileService) Follow(ctx context.Context, profileID string) error {
	follower, followee, err := s.followPair(ctx, profileID)
	if err != nil {
		return err
	}

	if err = s.followRepo.Follow(ctx, follower.ProfileID, followee.ProfileID); err != nil {
		return err
	}

	monitoring.FollowEvents.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the edge if present.
func (s *profileService) Unfollow(ctx context.Context, profileID string) error {
	follower, followee, err := s.followPair(ctx, profileID)
	if err != nil {
		return err
	}

	if err = s.followRepo.Unfollow(ctx, follower.ProfileID, followee.ProfileID); err != nil {
		return err
	}

	monitoring.FollowEvents.WithLabelValues("unfollow").Inc()
	return nil
}

func (s *profileService) followPair(ctx context.Context, profileID string) (*models.Profile, *models.Profile, error) {
	actor := ActorFromContext(ctx)
	if err := s.follows.HasPermission(actor, OpUpdate); err != nil {
		return nil, nil, err
	}

	follower, err := s.profileRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil, apperror.NewValidation(apperror.NonFieldErrors, msgProfileRequired)
		}
		return nil, nil, err
	}

	followee, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}

	if follower.ProfileID == followee.ProfileID {
		return nil, nil, apperror.NewValidation(apperror.NonFieldErrors, msgSelfFollow)
	}

	return follower, followee, nil
}

// Following lists whom the profile follows; only its owner may ask.
func (s *profileService) Following(ctx context.Context, profileID string) ([]models.Profile, error) {
	profile, err := s.getOwned(ctx, profileID, OpUpdate)
	if err != nil {
		return nil, err
	}

	return s.followRepo.Following(ctx, profile.ProfileID)
}

func (s *profileService) Followers(ctx context.Context, profileID string) ([]models.Profile, error) {
	if err := s.follows.HasPermission(ActorFromContext(ctx), OpList); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return s.followRepo.Followers(ctx, profile.ProfileID)
}

func (s *profileService) getOwned(ctx context.Context, profileID string, op Operation) (*models.Profile, error) {
	actor := ActorFromContext(ctx)
	if err := s.permission.HasPermission(actor, op); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err = s.permission.HasObjectPermission(actor, op, profile.UserID); err != nil {
		return nil, err
	}

	return profile, nil
}
