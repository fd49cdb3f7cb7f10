package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"lunabay/config"
	"lunabay/infras/kafka"
	"lunabay/infras/mailer"
	"lunabay/infras/otel"
	"lunabay/infras/postgres"
	"lunabay/internal/domains/booking/model"
	"lunabay/internal/domains/booking/model/dto"
	"lunabay/internal/domains/booking/repository"
	guestModel "lunabay/internal/domains/guest/model"
	guestRepo "lunabay/internal/domains/guest/repository"
	roomModel "lunabay/internal/domains/room/model"
	roomRepo "lunabay/internal/domains/room/repository"
	"lunabay/shared"
	"lunabay/shared/cache"
	"lunabay/shared/constant"
	gDto "lunabay/shared/dto"
	"lunabay/shared/failure"
	"lunabay/shared/timezone"

	"github.com/google/uuid"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	eventBookingCreated = "booking.created"
	eventBookingUpdated = "booking.updated"
	eventBookingDeleted = "booking.deleted"
)

type bookingEvent struct {
	Action     string `json:"action"`
	GuestID    string `json:"guestId"`
	RoomID     string `json:"roomId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut,omitempty"`
	NumGuests  int    `json:"guests,omitempty"`
	TotalPrice int64  `json:"totalPrice,omitempty"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest) error
	Delete(ctx context.Context, req dto.DeleteBookingRequest) error
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	guestRepo guestRepo.Guest
	txm       postgres.Transactor
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	mailer    mailer.Mailer
	events    kafka.Client
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	txm postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	mailer mailer.Mailer,
	events kafka.Client,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		guestRepo: guestRepo,
		txm:       txm,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		mailer:    mailer,
		events:    events,
	}
}

// Create books a room for a guest inside a single transaction. The room row
// is locked up front so concurrent requests for the same room serialize;
// the overlap check and the insert then happen against a stable view. The
// client-sent total price is ignored and recomputed from the stored rate.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking dates")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = validateDateRange(checkIn, checkOut); err != nil {
		return res, err
	}

	var (
		booking model.Booking
		room    roomModel.Room
	)

	err = s.txm.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err = s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		overlap, err := s.repo.ExistOverlapTx(ctx, tx, room.ID, checkIn, checkOut, nil)
		if err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}

		if overlap {
			return failure.Conflict("room is already booked for the selected dates") // nolint:wrapcheck
		}

		guest, err := s.upsertGuestTx(ctx, tx, req.FullName, req.Email, req.Phone)
		if err != nil {
			return err
		}

		booking = model.Booking{
			GuestID:    guest.ID,
			RoomID:     room.ID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			NumGuests:  req.Guests,
			TotalPrice: totalPrice(room.PricePerNight, checkIn, checkOut, req.Guests),
			CreatedAt:  timezone.Now(),
		}

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			if isPqError(err, constant.PqErrorCodeUniqueViolation) {
				return failure.Conflict("a booking with the same guest, room and check-in already exists") // nolint:wrapcheck
			}

			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("roomId", req.RoomID).Msg("failed to create booking")

		return res, err
	}

	// The booking is committed; everything past this point is best effort.
	go s.afterCommit(ctx, eventBookingCreated, booking, func(c context.Context) {
		summary := mailer.BookingSummary{
			GuestName:  req.FullName,
			RoomName:   room.Name,
			CheckIn:    booking.CheckIn,
			CheckOut:   booking.CheckOut,
			NumGuests:  booking.NumGuests,
			TotalPrice: booking.TotalPrice,
		}

		if err := s.mailer.SendBookingConfirmation(c, req.Email, summary); err != nil {
			log.Error().Err(err).Str("email", req.Email).Msg("failed to send booking confirmation email")
		}
	})

	res.FromModel(booking)

	return res, nil
}

// Update edits a booking addressed by (guest_id, room_id, originalCheckIn).
// The same lock-then-check discipline as Create applies, with the booking
// being edited excluded from the overlap check.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	key, err := req.Key()
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = validateDateRange(checkIn, checkOut); err != nil {
		return err
	}

	var updated model.Booking

	err = s.txm.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(key.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		overlap, err := s.repo.ExistOverlapTx(ctx, tx, room.ID, checkIn, checkOut, &key)
		if err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}

		if overlap {
			return failure.Conflict("room is already booked for the selected dates") // nolint:wrapcheck
		}

		price := totalPrice(room.PricePerNight, checkIn, checkOut, req.NumGuests)

		affected, err := s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldCheckIn:    checkIn,
			model.FieldCheckOut:   checkOut,
			model.FieldNumGuests:  req.NumGuests,
			model.FieldTotalPrice: price,
		}, keyFilter(key))
		if err != nil {
			if isPqError(err, constant.PqErrorCodeUniqueViolation) {
				return failure.Conflict("a booking with the same guest, room and check-in already exists") // nolint:wrapcheck
			}

			return fmt.Errorf("failed to update booking: %w", err)
		}

		if affected == 0 {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if err = s.updateGuestContactTx(ctx, tx, key.GuestID, req.FullName, req.Phone); err != nil {
			return err
		}

		updated = model.Booking{
			GuestID:    key.GuestID,
			RoomID:     key.RoomID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			NumGuests:  req.NumGuests,
			TotalPrice: price,
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("roomId", key.RoomID).Msg("failed to update booking")

		return err
	}

	go s.afterCommit(ctx, eventBookingUpdated, updated, nil)

	return nil
}

// Delete removes a booking by its composite key.
func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	key, err := req.Key()
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	affected, err := s.repo.Delete(ctx, keyFilter(key))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	go s.afterCommit(ctx, eventBookingDeleted, model.Booking{
		GuestID: key.GuestID,
		RoomID:  key.RoomID,
		CheckIn: key.CheckIn,
	}, nil)

	return nil
}

// CheckAvailability is a plain read; it never locks and its answer is
// advisory only. Create re-checks under the room lock.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = validateDateRange(checkIn, checkOut); err != nil {
		return res, err
	}

	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	overlap, err := s.repo.Exist(ctx, overlapFilter(req.RoomID, checkIn, checkOut))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return res, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	return dto.AvailabilityResponse{
		RoomID:    req.RoomID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Available: !overlap,
	}, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllDetails(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.CountDetails(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// upsertGuestTx finds a guest by exact email or inserts a new row, and
// refreshes the stored name/phone when the request carries new values.
func (s *serviceImpl) upsertGuestTx(ctx context.Context, tx *sqlx.Tx, fullName, email, phone string) (guest guestModel.Guest, err error) {
	guest, err = s.guestRepo.GetByEmailTx(ctx, tx, email)
	if err != nil {
		return guest, fmt.Errorf("failed to look up guest: %w", err)
	}

	if guest.ID == constant.Empty {
		guest = guestModel.Guest{
			ID:       uuid.NewString(),
			FullName: fullName,
			Email:    email,
			Phone:    phone,
		}

		if err = s.guestRepo.InsertTx(ctx, tx, guest); err != nil {
			return guest, fmt.Errorf("failed to create guest: %w", err)
		}

		return guest, nil
	}

	mod := map[string]any{}
	if fullName != constant.Empty && fullName != guest.FullName {
		mod[guestModel.FieldFullName] = fullName
	}

	if phone != constant.Empty && phone != guest.Phone {
		mod[guestModel.FieldPhone] = phone
	}

	if len(mod) > 0 {
		if _, err = s.guestRepo.UpdateTx(ctx, tx, mod, shared.FilterByID(guest.ID, guestModel.FieldID, guestModel.TableName)); err != nil {
			return guest, fmt.Errorf("failed to update guest: %w", err)
		}
	}

	return guest, nil
}

func (s *serviceImpl) updateGuestContactTx(ctx context.Context, tx *sqlx.Tx, guestID, fullName, phone string) error {
	mod := map[string]any{}
	if fullName != constant.Empty {
		mod[guestModel.FieldFullName] = fullName
	}

	if phone != constant.Empty {
		mod[guestModel.FieldPhone] = phone
	}

	if len(mod) == 0 {
		return nil
	}

	if _, err := s.guestRepo.UpdateTx(ctx, tx, mod, shared.FilterByID(guestID, guestModel.FieldID, guestModel.TableName)); err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}

	return nil
}

// afterCommit runs the post-commit side effects: cache invalidation, the
// lifecycle event, and an optional extra step such as the confirmation
// email. Failures are logged and never propagated.
func (s *serviceImpl) afterCommit(ctx context.Context, action string, booking model.Booking, extra func(ctx context.Context)) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(c, s.cache, cacheCountBooking)

	if extra != nil {
		extra(c)
	}

	s.publishEvent(c, action, booking)
}

func (s *serviceImpl) publishEvent(ctx context.Context, action string, booking model.Booking) {
	if !s.cfg.External.Kafka.Enable {
		return
	}

	event := bookingEvent{
		Action:     action,
		GuestID:    booking.GuestID,
		RoomID:     booking.RoomID,
		CheckIn:    booking.CheckIn.Format(constant.DateOnlyLayout),
		NumGuests:  booking.NumGuests,
		TotalPrice: booking.TotalPrice,
	}

	if !booking.CheckOut.IsZero() {
		event.CheckOut = booking.CheckOut.Format(constant.DateOnlyLayout)
	}

	message := kafka.Message{
		Key:   shared.BuildCacheKey(booking.GuestID, booking.RoomID, event.CheckIn),
		Value: event,
	}

	if err := s.events.SendMessages(ctx, s.cfg.External.Kafka.BookingTopic, message); err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to publish booking event")
	}
}

func keyFilter(key model.Key) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldGuestID,
				Operator: gDto.FilterOperatorEq,
				Value:    key.GuestID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    key.RoomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckIn,
				Operator: gDto.FilterOperatorEq,
				Value:    key.CheckIn,
				Table:    model.TableName,
			},
		},
	}
}

func overlapFilter(roomID string, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckIn,
				ArgName:  "new_check_out",
				Operator: gDto.FilterOperatorLess,
				Value:    checkOut,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckOut,
				ArgName:  "new_check_in",
				Operator: gDto.FilterOperatorGreater,
				Value:    checkIn,
				Table:    model.TableName,
			},
		},
	}
}

func validateDateRange(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString("checkOut must be after checkIn") // nolint:wrapcheck
	}

	return nil
}

// totalPrice computes nights × nightly rate × guest count in cents.
func totalPrice(pricePerNight int64, checkIn, checkOut time.Time, guests int) int64 {
	nights := int64(checkOut.Sub(checkIn).Hours() / 24)

	return pricePerNight * nights * int64(guests)
}

func isPqError(err error, code string) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
