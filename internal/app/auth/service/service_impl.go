package service

import (
	"context"
	"errors"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/api-service/internal/adapters/transport/http/dto"
	customErrors "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/errors"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/jwt"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
	repo "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/repo"
	"github.com/inkwell-app/inkwell/api-service/internal/infra/config"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type authService struct {
	userRepo  repo.UserRepo
	tokenRepo repo.TokenRepo
	jwtUtil   jwt.JWTUtil
	cfg       *config.Config
	v         *validator.Validate
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.User, error)
	Login(context.Context, dto.LoginDTO) (model.Session, error)
	GoogleLogin(context.Context, dto.GoogleLoginDTO) (model.Session, error)
	CurrentUser(ctx context.Context, id uuid.UUID) (model.User, error)
	Logout(ctx context.Context, token string) error
}

func New(
	ur repo.UserRepo,
	tr repo.TokenRepo,
	jm jwt.JWTUtil,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, tokenRepo: tr, jwtUtil: jm, cfg: cfg, v: v,
	}
}

// Register creates a local-credential account. It intentionally issues no
// token; the client logs in afterwards.
func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	// Best effort: the unique constraints on users are the real guard, a
	// concurrent insert still surfaces as ErrAlreadyExists from CreateUser.
	_, err := a.userRepo.GetUserByEmailOrUsername(ctx, in.Email, in.Username)
	switch {
	case err == nil:
		return model.User{}, customErrors.ErrAlreadyExists
	case !errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	passwordHash, err := argon2id.CreateHash(in.Password+a.cfg.PasswordPepper, argonParams)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	return user, nil
}

// Login deliberately reports the same ErrInvalidCredentials for an unknown
// email and a wrong password.
func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.Session, error) {
	if err := a.v.Struct(in); err != nil {
		return model.Session{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.Session{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.Session{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(in.Password+a.cfg.PasswordPepper, user.PasswordHash)
	if err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.Session{}, customErrors.ErrInvalidCredentials
	}

	return a.issueSession(user)
}

// GoogleLogin receives claims the caller has already verified against
// Google; this service never talks to the provider itself.
func (a *authService) GoogleLogin(ctx context.Context, in dto.GoogleLoginDTO) (model.Session, error) {
	if err := a.v.Struct(in); err != nil {
		return model.Session{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		if updateGoogleUser(&user, in.GoogleID, in.Picture) {
			if err := a.userRepo.UpdateUser(ctx, user); err != nil {
				return model.Session{}, customErrors.WrapInternal(err, "UpdateUser")
			}
		}

	case errors.Is(err, customErrors.ErrNotFound):
		// Google accounts get an unguessable local password so the
		// record satisfies the same schema as credential signups.
		passHash, _ := argon2id.CreateHash(uuid.NewString()+a.cfg.PasswordPepper, argonParams)
		user = model.User{
			ID:           uuid.New(),
			Username:     in.Name,
			Email:        in.Email,
			PasswordHash: passHash,
			GoogleID:     in.GoogleID,
			IsGoogleUser: true,
			Avatar:       in.Picture,
			Role:         model.RoleUser,
		}
		if _, err := a.userRepo.CreateUser(ctx, user); err != nil {
			return model.Session{}, customErrors.WrapInternal(err, "CreateUser")
		}

	default:
		return model.Session{}, customErrors.WrapInternal(err, "GetUserByEmail")
	}

	return a.issueSession(user)
}

func (a *authService) CurrentUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.userRepo.GetUserByID(ctx, id)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrNotFound
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "CurrentUser")
	}
	return user, nil
}

// Logout revokes the presented token's JTI until its natural expiry.
func (a *authService) Logout(ctx context.Context, token string) error {
	claims, err := a.jwtUtil.ValidateToken(token)
	if err != nil {
		return customErrors.ErrInvalidToken
	}
	if err := a.tokenRepo.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) issueSession(user model.User) (model.Session, error) {
	token, exp, _, err := a.jwtUtil.GenerateToken(user)
	if err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "GenerateToken")
	}
	return model.Session{
		Token:     token,
		ExpiresAt: exp,
		User:      user,
	}, nil
}

func updateGoogleUser(u *model.User, googleID, picture string) (changed bool) {
	if u.GoogleID == "" && googleID != "" {
		u.GoogleID = googleID
		u.IsGoogleUser = true
		changed = true
	}
	if picture != "" && u.Avatar != picture {
		u.Avatar = picture
		changed = true
	}
	return
}
