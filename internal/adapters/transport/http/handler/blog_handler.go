package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/dto"
	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/middleware"
	blogsvc "github.com/inkwell-app/inkwell/api-service/internal/app/blog/service"
	authErrors "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/errors"
	authjwt "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/jwt"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/blog/model"
)

type BlogHandler struct {
	svc blogsvc.Service
	log *zap.Logger
}

func NewBlogHandler(svc blogsvc.Service, log *zap.Logger) *BlogHandler {
	return &BlogHandler{svc: svc, log: log}
}

func (h *BlogHandler) RegisterRoutes(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	rg.GET("", h.list)
	rg.POST("", gate, h.create)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", gate, h.delete)
	rg.GET("/user/:userId", gate, h.listByAuthor)
	rg.POST("/:id/like", gate, h.like)
	rg.POST("/:id/comment", gate, h.comment)
}

type commentResponse struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	User userRef   `json:"user"`
	Date time.Time `json:"date"`
}

type postResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Excerpt   string            `json:"excerpt"`
	Image     string            `json:"image,omitempty"`
	Tags      []string          `json:"tags"`
	Author    userRef           `json:"author"`
	Likes     []string          `json:"likes"`
	Comments  []commentResponse `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
}

func toPostResponse(p model.Post) postResponse {
	likes := make([]string, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, l.UserID.String())
	}

	comments := make([]commentResponse, 0, len(p.Comments))
	for _, cm := range p.Comments {
		comments = append(comments, commentResponse{
			ID:   cm.ID.String(),
			Text: cm.Text,
			User: userRef{ID: cm.UserID.String(), Username: cm.User.Username},
			Date: cm.CreatedAt,
		})
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return postResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Image:     p.Image,
		Tags:      tags,
		Author:    userRef{ID: p.AuthorID.String(), Username: p.Author.Username},
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

func toPostResponses(posts []model.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func (h *BlogHandler) list(c *gin.Context) {
	posts, err := h.svc.ListPosts(c.Request.Context())
	if err != nil {
		h.serverError(c, "list posts", err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}

func (h *BlogHandler) get(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.svc.GetPost(c.Request.Context(), id)
	if err != nil {
		switch {
		case authErrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		default:
			h.serverError(c, "get post", err)
		}
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *BlogHandler) create(c *gin.Context) {
	_, uid, ok := h.identity(c)
	if !ok {
		return
	}

	var body dto.CreatePostDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), uid, body)
	if err != nil {
		switch {
		case authErrors.IsInvalidArgument(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			h.serverError(c, "create post", err)
		}
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *BlogHandler) delete(c *gin.Context) {
	identity, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), id, identity); err != nil {
		switch {
		case authErrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		case authErrors.IsForbidden(err):
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete this post"})
		default:
			// generic on purpose: the underlying error goes to the log only
			h.serverError(c, "delete post", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (h *BlogHandler) listByAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	posts, err := h.svc.ListPostsByAuthor(c.Request.Context(), authorID)
	if err != nil {
		h.serverError(c, "list posts by author", err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(posts))
}

func (h *BlogHandler) like(c *gin.Context) {
	_, uid, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.svc.ToggleLike(c.Request.Context(), id, uid)
	if err != nil {
		switch {
		case authErrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		default:
			h.serverError(c, "like post", err)
		}
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *BlogHandler) comment(c *gin.Context) {
	_, uid, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var body dto.CommentDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	post, err := h.svc.AddComment(c.Request.Context(), id, uid, body)
	if err != nil {
		switch {
		case authErrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		case authErrors.IsInvalidArgument(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			h.serverError(c, "comment post", err)
		}
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *BlogHandler) identity(c *gin.Context) (authjwt.Claims, uuid.UUID, bool) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
		return authjwt.Claims{}, uuid.Nil, false
	}
	uid, err := uuid.Parse(identity.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
		return authjwt.Claims{}, uuid.Nil, false
	}
	return identity, uid, true
}

func (h *BlogHandler) postID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *BlogHandler) serverError(c *gin.Context, op string, err error) {
	h.log.Error("blog handler error", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}
