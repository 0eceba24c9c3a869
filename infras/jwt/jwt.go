package jwt

import (
	"errors"
	"fmt"
	"parking/config"
	"parking/shared/constant"
	"parking/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

const bearerScheme = "Bearer"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrMissingHeader = errors.New("authorization header is required")
	ErrBearerScheme  = errors.New("authorization header must use the Bearer scheme")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims carry the caller identity. TokenID doubles as the registered jti and is what logout revokes.
type Claims struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role,omitempty"`
	TokenID  string    `json:"token_id"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(userID, username, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

type key struct {
	secret []byte
	ttl    time.Duration
}

type Service struct {
	issuer string
	keys   map[TokenType]key
	parser *jwt.Parser
}

func New(cfg *config.Config) JWT {
	return &Service{
		issuer: cfg.App.Name,
		keys: map[TokenType]key{
			AccessToken:  {secret: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {secret: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// GenerateTokenPair issues an access and a refresh token with distinct token ids.
func (s *Service) GenerateTokenPair(userID, username, role string) (*TokenPair, error) {
	now := timezone.Now()

	access, err := s.sign(Claims{UserID: userID, Username: username, Role: role, Type: AccessToken}, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.sign(Claims{UserID: userID, Username: username, Role: role, Type: RefreshToken}, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    bearerScheme,
		ExpiresIn:    int64(s.keys[AccessToken].ttl.Minutes()) * constant.MinutesToSeconds,
	}, nil
}

func (s *Service) sign(claims Claims, now time.Time) (string, error) {
	k, ok := s.keys[claims.Type]
	if !ok {
		return "", fmt.Errorf("unknown token type: %s", claims.Type)
	}

	claims.TokenID = uuid.NewString()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        claims.TokenID,
		Subject:   claims.UserID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(k.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(k.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies signature, expiry and that the token is of tokenType.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	k, ok := s.keys[tokenType]
	if !ok {
		return nil, fmt.Errorf("unknown token type: %s", tokenType)
	}

	claims := &Claims{}

	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return k.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType:
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader returns the credentials of a "Bearer <token>" Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) || strings.TrimSpace(token) == "" {
		return "", ErrBearerScheme
	}

	return strings.TrimSpace(token), nil
}
