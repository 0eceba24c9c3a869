package dto

import (
	"parking/infras/jwt"
	userModel "parking/internal/domains/user/model"
	userDto "parking/internal/domains/user/model/dto"
	gModel "parking/shared/model"
	"parking/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Password: hashedPassword,
		Role:     userModel.RoleUser,
		Metadata: gModel.NewMetadata(r.Username, now),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	t.AccessToken = tokenPair.AccessToken
	t.RefreshToken = tokenPair.RefreshToken
	t.TokenType = tokenPair.TokenType
	t.ExpiresIn = tokenPair.ExpiresIn
}

type LoginResponse struct {
	TokenResponse
	User     userDto.UserResponse `json:"user"`
	Redirect string               `json:"redirect"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
