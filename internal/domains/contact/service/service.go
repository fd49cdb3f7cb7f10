package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lunabay/infras/mailer"
	"lunabay/infras/otel"
	"lunabay/internal/domains/contact/model/dto"
	"lunabay/shared/constant"
)

type Contact interface {
	Send(ctx context.Context, req dto.ContactRequest) error
}

type serviceImpl struct {
	otel   otel.Otel
	mailer mailer.Mailer
}

func New(otel otel.Otel, mailer mailer.Mailer) Contact {
	return &serviceImpl{
		otel:   otel,
		mailer: mailer,
	}
}

// Send forwards a visitor message to the resort inbox.
func (s *serviceImpl) Send(ctx context.Context, req dto.ContactRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.mailer.SendContactMessage(ctx, req.ToMessage()); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to send contact message")

		return fmt.Errorf("failed to send contact message: %w", err)
	}

	return nil
}
