//go:build wireinject
// +build wireinject

package di

import (
	"lunabay/config"
	"lunabay/infras/jwt"
	"lunabay/infras/kafka"
	"lunabay/infras/mailer"
	"lunabay/infras/otel"
	"lunabay/infras/postgres"
	"lunabay/infras/redis"
	"lunabay/infras/s3"
	"lunabay/shared/cache"
	"lunabay/transport/http"
	"lunabay/transport/http/middleware"
	"lunabay/transport/http/router"

	"github.com/google/wire"

	authService "lunabay/internal/domains/auth/service"
	bookingRepository "lunabay/internal/domains/booking/repository"
	bookingService "lunabay/internal/domains/booking/service"
	contactService "lunabay/internal/domains/contact/service"
	guestRepository "lunabay/internal/domains/guest/repository"
	roomRepository "lunabay/internal/domains/room/repository"
	roomService "lunabay/internal/domains/room/service"
	authHandler "lunabay/internal/handlers/auth"
	bookingHandler "lunabay/internal/handlers/booking"
	contactHandler "lunabay/internal/handlers/contact"
	roomHandler "lunabay/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	guestRepository.New,
	bookingRepository.New,
	bookingService.New,
)

var contactDomain = wire.NewSet(
	contactService.New,
)

var domains = wire.NewSet(
	authDomain,
	roomDomain,
	bookingDomain,
	contactDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	contactHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
