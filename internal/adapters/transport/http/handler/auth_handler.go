package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/dto"
	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/middleware"
	appsvc "github.com/inkwell-app/inkwell/api-service/internal/app/auth/service"
	authErrors "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/errors"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
)

type AuthHandler struct {
	svc appsvc.Service
	log *zap.Logger
}

func NewAuthHandler(svc appsvc.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/google-login", h.googleLogin)
	rg.POST("/logout", gate, h.logout)
	rg.GET("/user", gate, h.currentUser)
}

type userRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type userResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar,omitempty"`
	Role         string `json:"role"`
	IsGoogleUser bool   `json:"isGoogleUser"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		Avatar:       u.Avatar,
		Role:         u.Role,
		IsGoogleUser: u.IsGoogleUser,
	}
}

func (h *AuthHandler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		switch {
		case authErrors.IsAlreadyExists(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists with this email or username"})
		case authErrors.IsInvalidArgument(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			h.serverError(c, "register", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":       user.ID.String(),
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	session, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		switch {
		// unknown email and wrong password answer identically
		case authErrors.IsInvalidCredentials(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		case authErrors.IsInvalidArgument(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			h.serverError(c, "login", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   session.Token,
		"user": gin.H{
			"id":       session.User.ID.String(),
			"username": session.User.Username,
			"email":    session.User.Email,
		},
	})
}

func (h *AuthHandler) googleLogin(c *gin.Context) {
	var body dto.GoogleLoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	session, err := h.svc.GoogleLogin(c.Request.Context(), body)
	if err != nil {
		switch {
		case authErrors.IsInvalidArgument(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			h.serverError(c, "google-login", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   session.Token,
		"user": gin.H{
			"id":      session.User.ID.String(),
			"name":    session.User.Username,
			"email":   session.User.Email,
			"picture": session.User.Avatar,
		},
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.TokenFromHeader(c)); err != nil {
		switch {
		case authErrors.IsInvalidToken(err) || authErrors.IsTokenExpired(err):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
		default:
			h.serverError(c, "logout", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) currentUser(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
		return
	}
	uid, err := uuid.Parse(identity.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
		return
	}

	user, err := h.svc.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		switch {
		case authErrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			h.serverError(c, "current user", err)
		}
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) serverError(c *gin.Context, op string, err error) {
	h.log.Error("auth handler error", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}
