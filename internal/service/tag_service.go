package service

import (
	"context"

	"socialhub/internal/models"
	"socialhub/internal/repository"
)

type TagService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, tagID string) (*models.TagDetail, error)
	CreateTag(ctx context.Context, word string) (*models.Tag, error)
	// UpdateTag renames the tag; a nil word leaves it unchanged.
	UpdateTag(ctx context.Context, tagID string, word *string) (*models.Tag, error)
}

type tagService struct {
	tagRepo    repository.TagRepository
	permission Permission
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{
		tagRepo:    tagRepo,
		permission: AuthenticatedOnly{},
	}
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	if err := s.permission.HasPermission(ActorFromContext(ctx), OpList); err != nil {
		return nil, err
	}

	return s.tagRepo.List(ctx)
}

func (s *tagService) GetTag(ctx context.Context, tagID string) (*models.TagDetail, error) {
	if err := s.permission.HasPermission(ActorFromContext(ctx), OpRetrieve); err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	postIDs, err := s.tagRepo.PostIDs(ctx, tag.TagID)
	if err != nil {
		return nil, err
	}

	return &models.TagDetail{Tag: *tag, PostIDs: postIDs}, nil
}

func (s *tagService) CreateTag(ctx context.Context, word string) (*models.Tag, error) {
	if err := s.permission.HasPermission(ActorFromContext(ctx), OpCreate); err != nil {
		return nil, err
	}

	tag := &models.Tag{Word: word}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, tagID string, word *string) (*models.Tag, error) {
	if err := s.permission.HasPermission(ActorFromContext(ctx), OpUpdate); err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if word == nil || *word == tag.Word {
		return tag, nil
	}

	tag.Word = *word
	if err = s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}
