package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/dto"
	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/middleware"
	appjwt "github.com/inkwell-app/inkwell/api-service/internal/app/auth/jwt"
	authErrors "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/errors"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
	"github.com/inkwell-app/inkwell/api-service/internal/infra/config"
)

type authSvcStub struct {
	registerUser  model.User
	registerErr   error
	loginSession  model.Session
	loginErr      error
	googleSession model.Session
	googleErr     error
	currentUser   model.User
	currentErr    error
	logoutErr     error
}

func (s *authSvcStub) Register(context.Context, dto.RegisterDTO) (model.User, error) {
	return s.registerUser, s.registerErr
}
func (s *authSvcStub) Login(context.Context, dto.LoginDTO) (model.Session, error) {
	return s.loginSession, s.loginErr
}
func (s *authSvcStub) GoogleLogin(context.Context, dto.GoogleLoginDTO) (model.Session, error) {
	return s.googleSession, s.googleErr
}
func (s *authSvcStub) CurrentUser(context.Context, uuid.UUID) (model.User, error) {
	return s.currentUser, s.currentErr
}
func (s *authSvcStub) Logout(context.Context, string) error {
	return s.logoutErr
}

type gateTokenRepoStub struct{}

func (gateTokenRepoStub) Revoke(context.Context, string, time.Time) error { return nil }
func (gateTokenRepoStub) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

func newAuthRouter(t *testing.T, svc *authSvcStub) (*gin.Engine, *appjwt.JwtUtilImpl) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	util, err := appjwt.NewJWTUtil(&config.Config{
		JWTSecret: "handler-secret",
		TokenTTL:  time.Hour,
		Issuer:    "test",
	})
	require.NoError(t, err)

	r := gin.New()
	gate := middleware.AuthRequired(util, gateTokenRepoStub{})
	NewAuthHandler(svc, zap.NewNop()).RegisterRoutes(r.Group("/api/auth"), gate)
	return r, util
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_RegisterSuccess(t *testing.T) {
	user := model.User{ID: uuid.New(), Username: "writer", Email: "e@example.com"}
	r, _ := newAuthRouter(t, &authSvcStub{registerUser: user})

	w := postJSON(r, "/api/auth/register", gin.H{
		"username": "writer", "email": "e@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	got := body["user"].(map[string]any)
	require.Equal(t, "writer", got["username"])
	require.Equal(t, user.ID.String(), got["id"])
	// the password hash never leaves the server
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_RegisterConflict(t *testing.T) {
	r, _ := newAuthRouter(t, &authSvcStub{registerErr: authErrors.ErrAlreadyExists})

	w := postJSON(r, "/api/auth/register", gin.H{
		"username": "writer", "email": "e@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User already exists with this email or username", decode(t, w)["message"])
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	r, _ := newAuthRouter(t, &authSvcStub{loginErr: authErrors.ErrInvalidCredentials})

	w := postJSON(r, "/api/auth/login", gin.H{
		"email": "e@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid credentials", decode(t, w)["message"])
}

func TestAuthHandler_LoginSuccessIssuesToken(t *testing.T) {
	user := model.User{ID: uuid.New(), Username: "writer", Email: "e@example.com"}
	r, _ := newAuthRouter(t, &authSvcStub{loginSession: model.Session{
		Token: "signed-token", User: user,
	}})

	w := postJSON(r, "/api/auth/login", gin.H{
		"email": "e@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "signed-token", body["token"])
	require.Equal(t, true, body["success"])
}

func TestAuthHandler_GoogleLoginShape(t *testing.T) {
	user := model.User{
		ID: uuid.New(), Username: "Google Writer", Email: "g@example.com",
		Avatar: "https://cdn.example.com/p.png",
	}
	r, _ := newAuthRouter(t, &authSvcStub{googleSession: model.Session{
		Token: "google-token", User: user,
	}})

	w := postJSON(r, "/api/auth/google-login", gin.H{
		"googleId": "g-123", "email": "g@example.com", "name": "Google Writer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "google-token", body["token"])
	got := body["user"].(map[string]any)
	require.Equal(t, "Google Writer", got["name"])
	require.Equal(t, "https://cdn.example.com/p.png", got["picture"])
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	user := model.User{ID: uuid.New(), Username: "writer", Email: "e@example.com", Role: model.RoleUser}
	r, util := newAuthRouter(t, &authSvcStub{currentUser: user})

	token, _, _, err := util.GenerateToken(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "writer", decode(t, w)["username"])
	require.NotContains(t, w.Body.String(), "PasswordHash")
}

func TestAuthHandler_CurrentUserNoToken(t *testing.T) {
	r, _ := newAuthRouter(t, &authSvcStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "No token, authorization denied", decode(t, w)["message"])
}
