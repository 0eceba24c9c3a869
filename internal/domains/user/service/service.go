package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

import (
	"context"
	"fmt"
	"parking/config"
	"parking/infras/otel"
	"parking/internal/domains/user/model"
	"parking/internal/domains/user/model/dto"
	"parking/internal/domains/user/repository"
	"parking/shared"
	"parking/shared/cache"
	"parking/shared/constant"
	"parking/shared/failure"
	gModel "parking/shared/model"
	"parking/shared/password"
	"parking/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser = "user:get"

	bootstrapActor = "system"
)

type User interface {
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	EnsureAdmin(ctx context.Context, username, plainPassword string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, repository.FilterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

// EnsureAdmin creates the bootstrap admin, or promotes an existing account with that username.
// An existing admin is left untouched.
func (s *serviceImpl) EnsureAdmin(ctx context.Context, username, plainPassword string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureAdmin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	existing, err := s.repo.Get(ctx, repository.FilterByUsername(username))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up bootstrap admin")

		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	if existing.ID != constant.Empty {
		if existing.IsAdmin() {
			log.Info().Str("username", username).Msg("bootstrap admin already present")

			return nil
		}

		update := shared.TransformFields(dto.UpdateRoleRequest{Role: model.RoleAdmin}, bootstrapActor)

		if err = s.repo.Update(ctx, update, repository.FilterByID(existing.ID)); err != nil {
			log.Error().Err(err).Msg("failed to promote bootstrap admin")

			return fmt.Errorf("failed to promote bootstrap admin: %w", err)
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, existing.ID)); err != nil {
				log.Error().Err(err).Msg("failed to delete user cache")
			}
		}()

		log.Info().Str("username", username).Msg("bootstrap admin promoted")

		return nil
	}

	hashed, err := password.Hash(plainPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash bootstrap admin password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := timezone.Now()

	admin := model.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: hashed,
		Role:     model.RoleAdmin,
		Metadata: gModel.NewMetadata(bootstrapActor, now),
	}

	if err = s.repo.Insert(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to create bootstrap admin")

		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Info().Str("username", username).Msg("bootstrap admin created")

	return nil
}
