package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lunabay/config"
	"lunabay/infras/jwt"
	jwtMocks "lunabay/infras/jwt/mocks"
	mailerMocks "lunabay/infras/mailer/mocks"
	"lunabay/infras/otel/mocks"
	"lunabay/internal/domains/auth/model/dto"
	"lunabay/internal/domains/auth/service"
	cacheMocks "lunabay/shared/cache/mocks"
	"lunabay/shared/failure"
	"lunabay/shared/password"
)

const adminEmail = "admin@lunabay.example"

func newAuthService(ctrl *gomock.Controller) (
	service.Auth,
	*cacheMocks.MockRedisCache,
	*mailerMocks.MockMailer,
	*jwtMocks.MockJWT,
) {
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Admin.Email = adminEmail
	cfg.Admin.CodeTTLSeconds = 300

	svc := service.New(cfg, mockCache, mockOtel, mockMailer, mockJWT)

	return svc, mockCache, mockMailer, mockJWT
}

func TestAuthService_RequestCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, mockMailer, _ := newAuthService(ctrl)

	tests := []struct {
		name      string
		req       dto.RequestCodeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "code sent to admin email",
			req:  dto.RequestCodeRequest{Email: adminEmail},
			setupMock: func() {
				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), 300).
					Return(nil)

				mockMailer.EXPECT().
					SendLoginCode(gomock.Any(), adminEmail, gomock.Len(6)).
					Return(nil)
			},
		},
		{
			name:      "unknown email is rejected",
			req:       dto.RequestCodeRequest{Email: "stranger@example.com"},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "cache failure propagates",
			req:  dto.RequestCodeRequest{Email: adminEmail},
			setupMock: func() {
				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), 300).
					Return(errors.New("redis down"))
			},
			wantErr: true,
		},
		{
			name: "mailer failure propagates",
			req:  dto.RequestCodeRequest{Email: adminEmail},
			setupMock: func() {
				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), 300).
					Return(nil)

				mockMailer.EXPECT().
					SendLoginCode(gomock.Any(), adminEmail, gomock.Any()).
					Return(errors.New("smtp error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.RequestCode(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_VerifyCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCache, _, mockJWT := newAuthService(ctrl)

	hash, err := password.Hash("123456")
	assert.NoError(t, err)

	tests := []struct {
		name      string
		req       dto.VerifyCodeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "valid code yields a token",
			req:  dto.VerifyCodeRequest{Email: adminEmail, Code: "123456"},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*string) = hash

						return nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockJWT.EXPECT().
					Generate(adminEmail, gomock.Any()).
					Return(&jwt.Token{
						AccessToken: "access-token",
						TokenType:   "Bearer",
						ExpiresIn:   7200,
					}, nil)
			},
		},
		{
			name: "expired or missing code",
			req:  dto.VerifyCodeRequest{Email: adminEmail, Code: "123456"},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong code",
			req:  dto.VerifyCodeRequest{Email: adminEmail, Code: "654321"},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*string) = hash

						return nil
					})
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "token generation failure",
			req:  dto.VerifyCodeRequest{Email: adminEmail, Code: "123456"},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*string) = hash

						return nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockJWT.EXPECT().
					Generate(adminEmail, gomock.Any()).
					Return(nil, errors.New("signing error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.VerifyCode(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)
			}
		})
	}
}
