package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// GetUserByEmailOrUsername is the combined existence check used by
	// registration: one lookup matching either column.
	GetUserByEmailOrUsername(ctx context.Context, email, username string) (model.User, error)

	UpdateUser(ctx context.Context, u model.User) error
}
