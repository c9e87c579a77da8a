package service

import (
	"socialhub/internal/config"
	"socialhub/internal/repository"
	"socialhub/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Profile ProfileService
	Post    PostService
	Tag     TagService
	Tables  TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User, rep.Profile, storage),
		Profile: NewProfileService(rep.Profile, rep.Follow, rep.Post, storage, cfg),
		Post:    NewPostService(rep.Post),
		Tag:     NewTagService(rep.Tag),
		Tables:  NewTablesService(rep.Tables),
	}
}
