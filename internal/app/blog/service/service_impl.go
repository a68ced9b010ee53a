package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/dto"
	customErrors "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/errors"
	authjwt "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/jwt"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/blog/authz"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/blog/model"
	repo "github.com/inkwell-app/inkwell/api-service/internal/domain/blog/repo"
)

// excerptLen is how much of the content the list view shows.
const excerptLen = 150

type blogService struct {
	postRepo repo.PostRepo
	v        *validator.Validate
}

type Service interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (model.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)
	CreatePost(ctx context.Context, authorID uuid.UUID, in dto.CreatePostDTO) (model.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID, identity authjwt.Claims) error
	ToggleLike(ctx context.Context, id, userID uuid.UUID) (model.Post, error)
	AddComment(ctx context.Context, id, userID uuid.UUID, in dto.CommentDTO) (model.Post, error)
}

func New(pr repo.PostRepo, v *validator.Validate) Service {
	return &blogService{postRepo: pr, v: v}
}

func (b *blogService) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := b.postRepo.ListPosts(ctx)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListPosts")
	}
	return posts, nil
}

func (b *blogService) GetPost(ctx context.Context, id uuid.UUID) (model.Post, error) {
	post, err := b.postRepo.GetPostByID(ctx, id)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.Post{}, customErrors.ErrNotFound
	case err != nil:
		return model.Post{}, customErrors.WrapInternal(err, "GetPost")
	}
	return post, nil
}

func (b *blogService) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	posts, err := b.postRepo.ListPostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListPostsByAuthor")
	}
	return posts, nil
}

func (b *blogService) CreatePost(ctx context.Context, authorID uuid.UUID, in dto.CreatePostDTO) (model.Post, error) {
	if err := b.v.Struct(in); err != nil {
		return model.Post{}, customErrors.NewInvalidArgument(err.Error())
	}

	post := model.Post{
		ID:       uuid.New(),
		Title:    in.Title,
		Content:  in.Content,
		Excerpt:  makeExcerpt(in.Content),
		Image:    in.Image,
		Tags:     in.Tags,
		AuthorID: authorID,
	}
	if _, err := b.postRepo.CreatePost(ctx, post); err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "CreatePost")
	}

	created, err := b.postRepo.GetPostByID(ctx, post.ID)
	if err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "CreatePost")
	}
	return created, nil
}

// DeletePost removes a post after the ownership check; the post is left
// untouched when the caller is neither its author nor an admin.
func (b *blogService) DeletePost(ctx context.Context, id uuid.UUID, identity authjwt.Claims) error {
	post, err := b.postRepo.GetPostByID(ctx, id)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "DeletePost")
	}

	if !authz.CanMutate(post, identity) {
		return customErrors.ErrForbidden
	}

	if err := b.postRepo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return customErrors.ErrNotFound
		}
		return customErrors.WrapInternal(err, "DeletePost")
	}
	return nil
}

// ToggleLike likes the post on behalf of userID, or removes the like when
// one is already present.
func (b *blogService) ToggleLike(ctx context.Context, id, userID uuid.UUID) (model.Post, error) {
	post, err := b.postRepo.GetPostByID(ctx, id)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.Post{}, customErrors.ErrNotFound
	case err != nil:
		return model.Post{}, customErrors.WrapInternal(err, "ToggleLike")
	}

	if post.LikedBy(userID) {
		err = b.postRepo.RemoveLike(ctx, id, userID)
	} else {
		err = b.postRepo.AddLike(ctx, id, userID)
	}
	if err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "ToggleLike")
	}

	updated, err := b.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "ToggleLike")
	}
	return updated, nil
}

func (b *blogService) AddComment(ctx context.Context, id, userID uuid.UUID, in dto.CommentDTO) (model.Post, error) {
	if err := b.v.Struct(in); err != nil {
		return model.Post{}, customErrors.NewInvalidArgument(err.Error())
	}

	post, err := b.postRepo.GetPostByID(ctx, id)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.Post{}, customErrors.ErrNotFound
	case err != nil:
		return model.Post{}, customErrors.WrapInternal(err, "AddComment")
	}

	comment := model.Comment{
		ID:     uuid.New(),
		PostID: post.ID,
		UserID: userID,
		Text:   in.Comment,
	}
	if err := b.postRepo.AddComment(ctx, comment); err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "AddComment")
	}

	updated, err := b.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "AddComment")
	}
	return updated, nil
}

func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLen {
		runes = runes[:excerptLen]
	}
	return string(runes) + "..."
}
