package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	customErrors "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/errors"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/blog/model"
)

type PostgresPostRepo struct {
	db *gorm.DB
}

func NewPostgresPostRepo(db *gorm.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

func (p *PostgresPostRepo) withAssociations(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).
		Preload("Author").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_comments.created_at DESC")
		}).
		Preload("Comments.User")
}

func (p *PostgresPostRepo) CreatePost(ctx context.Context, post model.Post) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Omit("Author", "Likes", "Comments").Create(&post)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// author row vanished between token issuance and insert
			return uuid.Nil, customErrors.ErrNotFound
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreatePost")
	}
	return post.ID, nil
}

func (p *PostgresPostRepo) GetPostByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	var post model.Post
	res := p.withAssociations(ctx).Where("id = ?", id).First(&post)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Post{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "GetPostByID")
	}

	return post, nil
}

func (p *PostgresPostRepo) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	res := p.withAssociations(ctx).Order("created_at DESC").Find(&posts)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListPosts")
	}

	return posts, nil
}

func (p *PostgresPostRepo) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	res := p.withAssociations(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListPostsByAuthor")
	}

	return posts, nil
}

func (p *PostgresPostRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeletePost")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}

func (p *PostgresPostRepo) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	like := model.Like{PostID: postID, UserID: userID}
	res := p.db.WithContext(ctx).Create(&like)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// concurrent double-like, toggle already happened
			return nil
		}
		return customErrors.WrapInternal(err, "AddLike")
	}
	return nil
}

func (p *PostgresPostRepo) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	res := p.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.Like{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "RemoveLike")
	}
	return nil
}

func (p *PostgresPostRepo) AddComment(ctx context.Context, c model.Comment) error {
	res := p.db.WithContext(ctx).Omit("User").Create(&c)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "AddComment")
	}
	return nil
}
