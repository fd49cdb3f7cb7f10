package room

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lunabay/infras/otel"
	"lunabay/internal/domains/room/model"
	"lunabay/internal/domains/room/model/dto"
	"lunabay/internal/domains/room/service"
	"lunabay/shared/constant"
	gDto "lunabay/shared/dto"
	"lunabay/shared/failure"
	"lunabay/shared/validator"
	"lunabay/transport/http/middleware"
	"lunabay/transport/http/response"
)

type Handler struct {
	service    service.Room
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Room, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
	})

	router.Route("/admin/rooms", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Admin)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Get("/features", handler.GetFeatures)
	})
}

// GetRooms retrieves the room catalog with optional filtering and pagination.
// @Summary Get all rooms
// @Description Retrieve all rooms with their feature tags.
// @Tags Room
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Success 200 {object} dto.GetRoomsResponse "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Description Retrieve a room and its feature tags by its unique identifier.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// CreateRoom creates a new room from a multipart form.
// @Summary Create a new room
// @Description Create a new room with an optional image and feature tags.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Room name"
// @Param pricePerNight formData integer true "Nightly rate in cents"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateRoomRequest{
		Name:        r.FormValue(model.FieldName),
		Description: r.FormValue(model.FieldDescription),
		FeatureIDs:  formFeatureIDs(r),
	}

	if priceStr := r.FormValue("pricePerNight"); priceStr != constant.Empty {
		price, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, failure.BadRequestFromString("pricePerNight must be an integer"))

			return
		}

		req.PricePerNight = price
	}

	if file, fileHeader, err := r.FormFile(constant.FormFieldImage); err == nil {
		defer file.Close()

		req.Image = fileHeader
		req.ImageFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	scope.AddEvent("Room created successfully by " + admin)

	response.WithMessage(w, http.StatusCreated, "Room created successfully")
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Description Update room details, image and feature tags.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateRoomRequest{
		Name: r.FormValue(model.FieldName),
	}

	if _, ok := r.MultipartForm.Value[model.FieldDescription]; ok {
		description := r.FormValue(model.FieldDescription)
		req.Description = &description
	}

	if priceStr := r.FormValue("pricePerNight"); priceStr != constant.Empty {
		price, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, failure.BadRequestFromString("pricePerNight must be an integer"))

			return
		}

		req.PricePerNight = &price
	}

	if _, ok := r.MultipartForm.Value[formFieldFeatureIDs]; ok {
		featureIDs := formFeatureIDs(r)
		req.FeatureIDs = &featureIDs
	}

	if file, fileHeader, err := r.FormFile(constant.FormFieldImage); err == nil {
		defer file.Close()

		req.Image = fileHeader
		req.ImageFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	scope.AddEvent("Room updated successfully by " + admin)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Description Delete a room; fails with a conflict when the room still has bookings.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	scope.AddEvent("Room deleted successfully by " + admin)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// GetFeatures retrieves all feature tags available for rooms.
// @Summary Get all room features
// @Description Retrieve the feature tags rooms can be labeled with.
// @Tags Room
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetFeaturesResponse "List of features"
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/features [get]
// @Security BearerAuth
func (handler *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeatures")
	defer scope.End()

	features, err := handler.service.GetFeatures(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get features")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Features retrieved successfully")

	response.WithJSON(w, http.StatusOK, features)
}

const formFieldFeatureIDs = "featureIds"

// formFeatureIDs reads feature IDs from repeated form fields or a single
// comma-separated value.
func formFeatureIDs(r *http.Request) []string {
	values := r.Form[formFieldFeatureIDs]
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	ids := make([]string, 0, len(values))

	for _, v := range values {
		if v = strings.TrimSpace(v); v != constant.Empty {
			ids = append(ids, v)
		}
	}

	return ids
}
