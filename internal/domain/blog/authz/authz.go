package authz

import (
	authjwt "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/jwt"
	authmodel "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/blog/model"
)

// CanMutate reports whether the authenticated identity may mutate the post:
// the post's author always can, admins can regardless of ownership.
func CanMutate(post model.Post, identity authjwt.Claims) bool {
	return post.AuthorID.String() == identity.Subject ||
		identity.Role == authmodel.RoleAdmin
}
