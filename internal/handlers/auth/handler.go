package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lunabay/infras/otel"
	"lunabay/internal/domains/auth/model/dto"
	"lunabay/internal/domains/auth/service"
	"lunabay/shared/constant"
	"lunabay/shared/validator"
	"lunabay/transport/http/response"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/request-code", handler.RequestCode)
		routerGroup.Post("/verify-code", handler.VerifyCode)
	})
}

// RequestCode emails a one-time login code to the admin.
// @Summary Request a login code
// @Description Email a short-lived one-time code to the admin address.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RequestCodeRequest true "Request Code Request"
// @Success 200 {object} response.Message "Login code sent"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/request-code [post]
func (handler *Handler) RequestCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestCode")
	defer scope.End()

	req := dto.RequestCodeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.RequestCode(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request login code")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Login code sent")

	response.WithMessage(writer, http.StatusOK, "Login code sent")
}

// VerifyCode exchanges a one-time code for an access token.
// @Summary Verify a login code
// @Description Exchange a valid one-time code for an admin access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyCodeRequest true "Verify Code Request"
// @Success 200 {object} dto.TokenResponse "Access token"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/verify-code [post]
func (handler *Handler) VerifyCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyCode")
	defer scope.End()

	req := dto.VerifyCodeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	token, err := handler.service.VerifyCode(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify login code")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Login code verified")

	response.WithJSON(writer, http.StatusOK, token)
}
