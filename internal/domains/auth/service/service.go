package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"parking/config"
	"parking/infras/jwt"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/internal/domains/auth/model/dto"
	userModel "parking/internal/domains/user/model"
	userDto "parking/internal/domains/user/model/dto"
	userRepo "parking/internal/domains/user/repository"
	"parking/shared/constant"
	"parking/shared/failure"
	"parking/shared/password"
	"parking/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

var errUsernameTaken = failure.Conflict("username already taken")

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	denylist   jwt.Denylist
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, denylist jwt.Denylist) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		denylist:   denylist,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, userRepo.FilterByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, errUsernameTaken
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if postgres.IsUniqueViolation(err, userModel.ConstraintUsername) {
			return res, errUsernameTaken
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, userRepo.FilterByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.InvalidCredentialsError
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.InvalidCredentialsError
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)
	res.Redirect = user.Role.Dashboard()

	return res, nil
}

// RefreshToken rotates the pair: the presented refresh token is revoked and the role is re-read.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("invalid refresh token")

		if errors.Is(err, jwt.ErrExpiredToken) {
			return res, failure.Unauthorized("refresh token expired")
		}

		return res, failure.Unauthorized("invalid refresh token")
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check refresh token")

		return res, fmt.Errorf("failed to check refresh token: %w", err)
	}

	if revoked {
		return res, failure.Unauthorized("refresh token revoked")
	}

	user, err := s.userRepo.Get(ctx, userRepo.FilterByID(claims.UserID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized("user no longer exists")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	expiresAt := timezone.Now().Add(time.Duration(s.cfg.JWT.RefreshExpireMin) * time.Minute)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err = s.denylist.Revoke(ctx, claims.TokenID, ttlUntil(expiresAt)); err != nil {
		log.Error().Err(err).Msg("failed to revoke rotated refresh token")

		return res, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, tokenID string, expiresAt time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if tokenID == constant.Empty {
		return failure.Unauthorized("missing token id")
	}

	if err = s.denylist.Revoke(ctx, tokenID, ttlUntil(expiresAt)); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func ttlUntil(expiresAt time.Time) time.Duration {
	return expiresAt.Sub(timezone.Now())
}
