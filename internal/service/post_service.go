package service

import (
	"context"

	"socialhub/internal/models"
	"socialhub/internal/monitoring"
	"socialhub/internal/repository"
)

type PostService interface {
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, postID string, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
	MyPosts(ctx context.Context) ([]models.Post, error)
}

type postService struct {
	postRepo   repository.PostRepository
	permission Permission
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{
		postRepo:   postRepo,
		permission: ReadOnlyOrOwner{},
	}
}

// ListPosts returns the caller's visible posts narrowed by filter.
func (p *postService) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	actor := ActorFromContext(ctx)
	if err := p.permission.HasPermission(actor, OpList); err != nil {
		return nil, err
	}

	return p.postRepo.ListVisible(ctx, actor.UserID, filter)
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	actor := ActorFromContext(ctx)
	if err := p.permission.HasPermission(actor, OpRetrieve); err != nil {
		return nil, err
	}

	return p.postRepo.GetVisibleByID(ctx, actor.UserID, postID)
}

func (p *postService) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	actor := ActorFromContext(ctx)
	if err := p.permission.HasPermission(actor, OpCreate); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: actor.UserID,
		Text:   req.Text,
	}

	if err := p.postRepo.Create(ctx, post, req.TagIDs); err != nil {
		return nil, err
	}

	monitoring.PostsCreated.Inc()
	return post, nil
}

// UpdatePost applies the non-nil fields of req. Posts outside the caller's
// visible set are NotFound; visible posts of other users are Forbidden.
func (p *postService) UpdatePost(ctx context.Context, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := p.getOwned(ctx, postID, OpUpdate)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		post.Text = *req.Text
	}

	var tagIDs []string
	if req.TagIDs != nil {
		tagIDs = *req.TagIDs
		if tagIDs == nil {
			tagIDs = []string{}
		}
	}

	if err = p.postRepo.Update(ctx, post, tagIDs); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID string) error {
	if _, err := p.getOwned(ctx, postID, OpDelete); err != nil {
		return err
	}

	return p.postRepo.Delete(ctx, postID)
}

// MyPosts returns the caller's own posts, unfiltered.
func (p *postService) MyPosts(ctx context.Context) ([]models.Post, error) {
	actor := ActorFromContext(ctx)
	if err := p.permission.HasPermission(actor, OpList); err != nil {
		return nil, err
	}

	return p.postRepo.ListByUserID(ctx, actor.UserID)
}

func (p *postService) getOwned(ctx context.Context, postID string, op Operation) (*models.Post, error) {
	actor := ActorFromContext(ctx)
	if err := p.permission.HasPermission(actor, op); err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetVisibleByID(ctx, actor.UserID, postID)
	if err != nil {
		return nil, err
	}

	if err = p.permission.HasObjectPermission(actor, op, post.UserID); err != nil {
		return nil, err
	}

	return post, nil
}
