package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/api-service/internal/domain/blog/model"
)

type PostRepo interface {
	CreatePost(ctx context.Context, p model.Post) (uuid.UUID, error)

	// GetPostByID returns the post with author, likes and comments (with
	// their authors) resolved.
	GetPostByID(ctx context.Context, id uuid.UUID) (model.Post, error)

	// ListPosts returns all posts, newest first.
	ListPosts(ctx context.Context) ([]model.Post, error)

	ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)

	DeletePost(ctx context.Context, id uuid.UUID) error

	AddLike(ctx context.Context, postID, userID uuid.UUID) error

	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error

	AddComment(ctx context.Context, c model.Comment) error
}
