package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"

	"lunabay/config"
	"lunabay/infras/jwt"
	"lunabay/infras/mailer"
	"lunabay/infras/otel"
	"lunabay/internal/domains/auth/model/dto"
	"lunabay/shared"
	"lunabay/shared/cache"
	"lunabay/shared/constant"
	"lunabay/shared/failure"
	"lunabay/shared/password"
)

const cacheLoginCode = "auth:code"

const loginCodeMax = 1000000

type Auth interface {
	RequestCode(ctx context.Context, req dto.RequestCodeRequest) error
	VerifyCode(ctx context.Context, req dto.VerifyCodeRequest) (dto.TokenResponse, error)
}

type serviceImpl struct {
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	mailer mailer.Mailer
	jwt    jwt.JWT
}

func New(cfg *config.Config, cache cache.RedisCache, otel otel.Otel, mailer mailer.Mailer, jwt jwt.JWT) Auth {
	return &serviceImpl{
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		mailer: mailer,
		jwt:    jwt,
	}
}

// RequestCode emails a short-lived one-time code to the configured admin
// address. Any other email is rejected without revealing which addresses
// are registered.
func (s *serviceImpl) RequestCode(ctx context.Context, req dto.RequestCodeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Email != s.cfg.Admin.Email {
		log.Warn().Str("email", req.Email).Msg("login code requested for unknown email")

		return failure.Unauthorized("email is not registered") // nolint:wrapcheck
	}

	code, err := generateLoginCode()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate login code")

		return fmt.Errorf("failed to generate login code: %w", err)
	}

	hash, err := password.Hash(code)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash login code")

		return fmt.Errorf("failed to hash login code: %w", err)
	}

	cacheKey := shared.BuildCacheKey(cacheLoginCode, req.Email)
	if err = s.cache.Save(ctx, cacheKey, hash, s.cfg.Admin.CodeTTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to store login code")

		return fmt.Errorf("failed to store login code: %w", err)
	}

	if err = s.mailer.SendLoginCode(ctx, req.Email, code); err != nil {
		log.Error().Err(err).Msg("failed to send login code email")

		return fmt.Errorf("failed to send login code email: %w", err)
	}

	return nil
}

// VerifyCode exchanges a valid one-time code for an admin access token.
// The stored code is deleted on success, so each code works exactly once.
func (s *serviceImpl) VerifyCode(ctx context.Context, req dto.VerifyCodeRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheLoginCode, req.Email)

	var hash string
	if err = s.cache.Get(ctx, cacheKey, &hash); err != nil {
		log.Warn().Str("email", req.Email).Msg("login code not found or expired")

		return res, failure.Unauthorized("invalid or expired code") // nolint:wrapcheck
	}

	if err = password.Verify(req.Code, hash); err != nil {
		log.Warn().Str("email", req.Email).Msg("login code mismatch")

		return res, failure.Unauthorized("invalid or expired code") // nolint:wrapcheck
	}

	if err = s.cache.Delete(ctx, cacheKey); err != nil {
		log.Error().Err(err).Msg("failed to delete used login code")

		return res, fmt.Errorf("failed to delete used login code: %w", err)
	}

	token, err := s.jwt.Generate(req.Email, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")

		return res, fmt.Errorf("failed to generate access token: %w", err)
	}

	res.FromToken(token)

	return res, nil
}

func generateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(loginCodeMax))
	if err != nil {
		return constant.Empty, err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
