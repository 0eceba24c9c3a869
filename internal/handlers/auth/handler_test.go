package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	otelMocks "parking/infras/otel/mocks"
	"parking/internal/domains/auth/mocks"
	"parking/internal/domains/auth/model/dto"
	userMocks "parking/internal/domains/user/mocks"
	userDto "parking/internal/domains/user/model/dto"
	"parking/internal/handlers/auth"
	"parking/shared/constant"
	"parking/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, setupMock func(a *mocks.MockAuth, u *userMocks.MockUserService)) http.Handler {
	ctrl := gomock.NewController(t)

	authService := mocks.NewMockAuth(ctrl)
	userService := userMocks.NewMockUserService(ctrl)
	setupMock(authService, userService)

	handler := auth.New(authService, userService, otelMocks.NewOtel())

	r := chi.NewRouter()
	handler.Router(r)

	return r
}

func TestHandler(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		ctx       map[any]any
		setupMock func(a *mocks.MockAuth, u *userMocks.MockUserService)
		wantCode  int
		wantBody  string
	}{
		{
			name:   "register",
			method: http.MethodPost,
			path:   "/register",
			body:   `{"username":"alice","password":"secret"}`,
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {
				a.EXPECT().Register(gomock.Any(), dto.RegisterRequest{Username: "alice", Password: "secret"}).
					Return(userDto.UserResponse{ID: "u-1", Username: "alice", Role: constant.RoleUser}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"username":"alice"`,
		},
		{
			name:      "register without password",
			method:    http.MethodPost,
			path:      "/register",
			body:      `{"username":"alice"}`,
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "register taken",
			method: http.MethodPost,
			path:   "/register",
			body:   `{"username":"alice","password":"secret"}`,
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {
				a.EXPECT().Register(gomock.Any(), gomock.Any()).Return(userDto.UserResponse{}, failure.Conflict("username already taken"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "login returns dashboard",
			method: http.MethodPost,
			path:   "/login",
			body:   `{"username":"admin1","password":"admin123"}`,
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {
				a.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{Redirect: constant.DashboardAdmin}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"redirect":"/v1/admin"`,
		},
		{
			name:   "login wrong password",
			method: http.MethodPost,
			path:   "/login",
			body:   `{"username":"alice","password":"nope"}`,
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {
				a.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.InvalidCredentialsError)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "refresh",
			method: http.MethodPost,
			path:   "/refresh-token",
			body:   `{"refresh_token":"r"}`,
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {
				a.EXPECT().RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "r"}).
					Return(dto.TokenResponse{AccessToken: "a2"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"access_token":"a2"`,
		},
		{
			name:   "logout revokes current token",
			method: http.MethodPost,
			path:   "/logout",
			ctx:    map[any]any{constant.ContextKeyTokenID: "tok-1", constant.ContextKeyTokenExp: exp},
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {
				a.EXPECT().Logout(gomock.Any(), "tok-1", exp).Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "logout without token",
			method:    http.MethodPost,
			path:      "/logout",
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:   "me",
			method: http.MethodGet,
			path:   "/me",
			ctx:    map[any]any{constant.ContextKeyUserID: "u-1"},
			setupMock: func(a *mocks.MockAuth, u *userMocks.MockUserService) {
				u.EXPECT().Get(gomock.Any(), "u-1").Return(userDto.UserResponse{ID: "u-1", Username: "alice"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"id":"u-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(t, tt.setupMock)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))

			ctx := req.Context()
			for k, v := range tt.ctx {
				ctx = context.WithValue(ctx, k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
