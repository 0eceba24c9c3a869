package auth

import (
	"net/http"
	"parking/infras/otel"
	"parking/internal/domains/auth/model/dto"
	"parking/internal/domains/auth/service"
	userService "parking/internal/domains/user/service"
	"parking/shared/constant"
	"parking/shared/failure"
	"parking/shared/validator"
	"parking/transport/http/response"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service     service.Auth
	userService userService.User
	otel        otel.Otel
}

func New(service service.Auth, userService userService.User, otel otel.Otel) Handler {
	return Handler{
		service:     service,
		userService: userService,
		otel:        otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/refresh-token", handler.RefreshToken)
	r.Post("/logout", handler.Logout)
	r.Get("/me", handler.Me)
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a new account with role user.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[any] "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User registered successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// Login handles user login
// @Summary Login a user
// @Description Exchange credentials for an access/refresh token pair and the caller's dashboard.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh user token
// @Description Rotate the token pair using a refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.TokenResponse] "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Token refreshed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Logout revokes the access token used for this request
// @Summary Logout
// @Description Revoke the current access token until it expires.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message "Logged out successfully"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	expiresAt, _ := ctx.Value(constant.ContextKeyTokenExp).(time.Time)

	if tokenID == constant.Empty {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Logout(ctx, tokenID, expiresAt); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged out successfully")

	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}

// Me returns the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[any] "Current user"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.userService.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
