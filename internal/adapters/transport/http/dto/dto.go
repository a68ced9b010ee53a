package dto

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginDTO carries identity claims the frontend already verified
// against Google; the backend trusts them as-is.
type GoogleLoginDTO struct {
	GoogleID string `json:"googleId" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Picture  string `json:"picture"`
}

type CreatePostDTO struct {
	Title   string   `json:"title"   validate:"required"`
	Content string   `json:"content" validate:"required"`
	Image   string   `json:"image"`
	Tags    []string `json:"tags"`
}

type CommentDTO struct {
	Comment string `json:"comment" validate:"required"`
}
