package service_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/dto"
	blogsvc "github.com/inkwell-app/inkwell/api-service/internal/app/blog/service"
	authErrors "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/errors"
	authjwt "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/jwt"
	authmodel "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/blog/model"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type postRepoStub struct{ posts map[uuid.UUID]model.Post }

func newPostRepoStub() *postRepoStub {
	return &postRepoStub{posts: make(map[uuid.UUID]model.Post)}
}

func (s *postRepoStub) CreatePost(_ context.Context, p model.Post) (uuid.UUID, error) {
	p.CreatedAt = time.Now()
	s.posts[p.ID] = p
	return p.ID, nil
}
func (s *postRepoStub) GetPostByID(_ context.Context, id uuid.UUID) (model.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return model.Post{}, authErrors.ErrNotFound
	}
	return p, nil
}
func (s *postRepoStub) ListPosts(_ context.Context) ([]model.Post, error) {
	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
func (s *postRepoStub) ListPostsByAuthor(_ context.Context, authorID uuid.UUID) ([]model.Post, error) {
	var out []model.Post
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (s *postRepoStub) DeletePost(_ context.Context, id uuid.UUID) error {
	if _, ok := s.posts[id]; !ok {
		return authErrors.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}
func (s *postRepoStub) AddLike(_ context.Context, postID, userID uuid.UUID) error {
	p := s.posts[postID]
	p.Likes = append(p.Likes, model.Like{PostID: postID, UserID: userID})
	s.posts[postID] = p
	return nil
}
func (s *postRepoStub) RemoveLike(_ context.Context, postID, userID uuid.UUID) error {
	p := s.posts[postID]
	kept := p.Likes[:0]
	for _, l := range p.Likes {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	p.Likes = kept
	s.posts[postID] = p
	return nil
}
func (s *postRepoStub) AddComment(_ context.Context, c model.Comment) error {
	p := s.posts[c.PostID]
	c.CreatedAt = time.Now()
	p.Comments = append([]model.Comment{c}, p.Comments...)
	s.posts[c.PostID] = p
	return nil
}

/* ───────────────────────────── helpers ───────────────────────────── */

func newSvc() (blogsvc.Service, *postRepoStub) {
	repo := newPostRepoStub()
	return blogsvc.New(repo, validator.New()), repo
}

func identityFor(id uuid.UUID, role string) authjwt.Claims {
	return authjwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: id.String()},
		Role:             role,
	}
}

func createPost(t *testing.T, svc blogsvc.Service, author uuid.UUID) model.Post {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), author, dto.CreatePostDTO{
		Title:   "First post",
		Content: "Hello from the blog",
		Tags:    []string{"intro"},
	})
	require.NoError(t, err)
	return post
}

/* ───────────────────────────── tests ───────────────────────────── */

func TestBlogService_CreatePostExcerpt(t *testing.T) {
	svc, _ := newSvc()
	author := uuid.New()

	long := strings.Repeat("я", 200)
	post, err := svc.CreatePost(context.Background(), author, dto.CreatePostDTO{
		Title: "Long", Content: long,
	})
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("я", 150)+"...", post.Excerpt)
	require.Equal(t, author, post.AuthorID)

	short, err := svc.CreatePost(context.Background(), author, dto.CreatePostDTO{
		Title: "Short", Content: "hi",
	})
	require.NoError(t, err)
	require.Equal(t, "hi...", short.Excerpt)
}

func TestBlogService_CreatePostInvalid(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.CreatePost(context.Background(), uuid.New(), dto.CreatePostDTO{Title: "No content"})
	require.True(t, authErrors.IsInvalidArgument(err))
}

func TestBlogService_DeleteAuthorization(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	owner := uuid.New()
	post := createPost(t, svc, owner)

	// a stranger without the admin role is refused
	err := svc.DeletePost(ctx, post.ID, identityFor(uuid.New(), authmodel.RoleUser))
	require.True(t, authErrors.IsForbidden(err))

	// the post is untouched after the refusal
	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, post.Title, got.Title)

	// the owner may delete
	require.NoError(t, svc.DeletePost(ctx, post.ID, identityFor(owner, authmodel.RoleUser)))
	_, err = svc.GetPost(ctx, post.ID)
	require.True(t, authErrors.IsNotFound(err))
}

func TestBlogService_DeleteByAdmin(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	post := createPost(t, svc, uuid.New())

	require.NoError(t, svc.DeletePost(ctx, post.ID, identityFor(uuid.New(), authmodel.RoleAdmin)))
}

func TestBlogService_DeleteMissing(t *testing.T) {
	svc, _ := newSvc()

	err := svc.DeletePost(context.Background(), uuid.New(), identityFor(uuid.New(), authmodel.RoleAdmin))
	require.True(t, authErrors.IsNotFound(err))
}

func TestBlogService_ToggleLike(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	post := createPost(t, svc, uuid.New())
	reader := uuid.New()

	liked, err := svc.ToggleLike(ctx, post.ID, reader)
	require.NoError(t, err)
	require.Len(t, liked.Likes, 1)
	require.True(t, liked.LikedBy(reader))

	unliked, err := svc.ToggleLike(ctx, post.ID, reader)
	require.NoError(t, err)
	require.Empty(t, unliked.Likes)

	_, err = svc.ToggleLike(ctx, uuid.New(), reader)
	require.True(t, authErrors.IsNotFound(err))
}

func TestBlogService_AddComment(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	post := createPost(t, svc, uuid.New())
	reader := uuid.New()

	updated, err := svc.AddComment(ctx, post.ID, reader, dto.CommentDTO{Comment: "great read"})
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	require.Equal(t, "great read", updated.Comments[0].Text)
	require.Equal(t, reader, updated.Comments[0].UserID)

	// newest comment first
	updated, err = svc.AddComment(ctx, post.ID, reader, dto.CommentDTO{Comment: "second"})
	require.NoError(t, err)
	require.Equal(t, "second", updated.Comments[0].Text)

	_, err = svc.AddComment(ctx, post.ID, reader, dto.CommentDTO{})
	require.True(t, authErrors.IsInvalidArgument(err))

	_, err = svc.AddComment(ctx, uuid.New(), reader, dto.CommentDTO{Comment: "ghost"})
	require.True(t, authErrors.IsNotFound(err))
}

func TestBlogService_ListByAuthor(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	author := uuid.New()
	createPost(t, svc, author)
	createPost(t, svc, uuid.New())

	posts, err := svc.ListPostsByAuthor(ctx, author)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	all, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
