package service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
	"socialhub/internal/repository"
	"socialhub/internal/storage"
)

type UserService interface {
	GetMe(ctx context.Context) (*models.User, error)
	DeleteMe(ctx context.Context) error
}

type userService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	storage     storage.Storage
}

func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, storage storage.Storage) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		storage:     storage,
	}
}

func (s *userService) GetMe(ctx context.Context) (*models.User, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	return s.userRepo.GetUserByID(ctx, actor.UserID)
}

// DeleteMe removes the caller; profile, posts and follow edges go by cascade.
func (s *userService) DeleteMe(ctx context.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var photo string
	profile, err := s.profileRepo.GetByUserID(ctx, actor.UserID)
	switch {
	case err == nil:
		photo = profile.Photo
	case !errors.Is(err, apperror.ErrNotFound):
		return err
	}

	if err = s.userRepo.DeleteUser(ctx, actor.UserID); err != nil {
		return err
	}

	removePhoto(ctx, s.storage, photo)
	return nil
}

// removePhoto deletes the object behind a stored photo URL; failures are only logged.
func removePhoto(ctx context.Context, store storage.Storage, photo string) {
	if store == nil || photo == "" {
		return
	}

	objectName, ok := store.ObjectName(photo)
	if !ok {
		return
	}

	if err := store.DeleteObject(ctx, objectName); err != nil {
		log.WithError(err).WithField("object", objectName).Warn("failed to remove photo")
	}
}
