package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lunabay/config"
	kafkaMocks "lunabay/infras/kafka/mocks"
	mailerMocks "lunabay/infras/mailer/mocks"
	"lunabay/infras/otel/mocks"
	txMocks "lunabay/infras/postgres/mocks"
	bookingMocks "lunabay/internal/domains/booking/mocks"
	"lunabay/internal/domains/booking/model"
	"lunabay/internal/domains/booking/model/dto"
	"lunabay/internal/domains/booking/service"
	guestMocks "lunabay/internal/domains/guest/mocks"
	guestModel "lunabay/internal/domains/guest/model"
	roomMocks "lunabay/internal/domains/room/mocks"
	roomModel "lunabay/internal/domains/room/model"
	cacheMocks "lunabay/shared/cache/mocks"
	gDto "lunabay/shared/dto"
	"lunabay/shared/failure"
)

func newBookingService(ctrl *gomock.Controller) (
	service.Booking,
	*bookingMocks.MockBooking,
	*roomMocks.MockRoom,
	*guestMocks.MockGuest,
	*cacheMocks.MockRedisCache,
	*mailerMocks.MockMailer,
) {
	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockGuestRepo := guestMocks.NewMockGuest(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.Kafka.Enable = false

	// Post-commit side effects run on a goroutine; let them happen any
	// number of times without pinning the test to their timing.
	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockMailer.EXPECT().
		SendBookingConfirmation(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(
		mockRepo,
		mockRoomRepo,
		mockGuestRepo,
		txMocks.NewTransactor(),
		cfg,
		mockCache,
		mockOtel,
		mockMailer,
		mockKafka,
	)

	return svc, mockRepo, mockRoomRepo, mockGuestRepo, mockCache, mockMailer
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockRoomRepo, mockGuestRepo, _, _ := newBookingService(ctrl)

	room := roomModel.Room{
		ID:            "4f3c2e5b-9a1d-4c8e-b7f6-2d5a8c9e1f3b",
		Name:          "Ocean View Suite",
		PricePerNight: 25000,
	}

	existingGuest := guestModel.Guest{
		ID:       "8a7b6c5d-4e3f-2a1b-9c8d-7e6f5a4b3c2d",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+6281234567890",
	}

	validReq := dto.CreateBookingRequest{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "+6281234567890",
		RoomID:     room.ID,
		CheckIn:    "2026-09-10",
		CheckOut:   "2026-09-13",
		Guests:     2,
		TotalPrice: 1, // client-sent price, must be ignored
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantPrice int64
	}{
		{
			name: "successful booking for a new guest",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), nil).
					Return(false, nil)

				mockGuestRepo.EXPECT().
					GetByEmailTx(gomock.Any(), gomock.Any(), validReq.Email).
					Return(guestModel.Guest{}, nil)

				mockGuestRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			// 3 nights x 25000 x 2 guests, not the client-sent 1
			wantPrice: 150000,
		},
		{
			name: "existing guest is reused, not duplicated",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), nil).
					Return(false, nil)

				mockGuestRepo.EXPECT().
					GetByEmailTx(gomock.Any(), gomock.Any(), validReq.Email).
					Return(existingGuest, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantPrice: 150000,
		},
		{
			name: "existing guest gets refreshed name and phone",
			req: func() dto.CreateBookingRequest {
				req := validReq
				req.FullName = "Jane A. Doe"
				req.Phone = "+6289999999999"

				return req
			}(),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), nil).
					Return(false, nil)

				mockGuestRepo.EXPECT().
					GetByEmailTx(gomock.Any(), gomock.Any(), validReq.Email).
					Return(existingGuest, nil)

				mockGuestRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantPrice: 150000,
		},
		{
			name: "single-night stay is priced for one night",
			req: func() dto.CreateBookingRequest {
				req := validReq
				req.CheckOut = "2026-09-11"

				return req
			}(),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), nil).
					Return(false, nil)

				mockGuestRepo.EXPECT().
					GetByEmailTx(gomock.Any(), gomock.Any(), validReq.Email).
					Return(existingGuest, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantPrice: 50000,
		},
		{
			name: "room not found",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "overlapping booking is rejected",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), nil).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "duplicate composite key maps to conflict",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), nil).
					Return(false, nil)

				mockGuestRepo.EXPECT().
					GetByEmailTx(gomock.Any(), gomock.Any(), validReq.Email).
					Return(existingGuest, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505"})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "check-out before check-in",
			req: func() dto.CreateBookingRequest {
				req := validReq
				req.CheckIn = "2026-09-13"
				req.CheckOut = "2026-09-10"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "check-in equals check-out",
			req: func() dto.CreateBookingRequest {
				req := validReq
				req.CheckOut = req.CheckIn

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unparseable date",
			req: func() dto.CreateBookingRequest {
				req := validReq
				req.CheckIn = "10-09-2026"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error propagates",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantPrice, result.TotalPrice)
				assert.Equal(t, tt.req.RoomID, result.RoomID)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockRoomRepo, mockGuestRepo, _, _ := newBookingService(ctrl)

	room := roomModel.Room{
		ID:            "4f3c2e5b-9a1d-4c8e-b7f6-2d5a8c9e1f3b",
		Name:          "Ocean View Suite",
		PricePerNight: 25000,
	}

	validReq := dto.UpdateBookingRequest{
		GuestID:         "8a7b6c5d-4e3f-2a1b-9c8d-7e6f5a4b3c2d",
		RoomID:          room.ID,
		OriginalCheckIn: "2026-09-10",
		CheckIn:         "2026-09-11",
		CheckOut:        "2026-09-14",
		NumGuests:       3,
	}

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
					Return(false, nil)

				mockRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
			},
		},
		{
			name: "update with guest contact changes",
			req: func() dto.UpdateBookingRequest {
				req := validReq
				req.FullName = "Jane A. Doe"
				req.Phone = "+6289999999999"

				return req
			}(),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
					Return(false, nil)

				mockRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockGuestRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
			},
		},
		{
			name: "booking not found",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
					Return(false, nil)

				mockRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "new dates collide with another booking",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockRepo.EXPECT().
					ExistOverlapTx(gomock.Any(), gomock.Any(), room.ID, gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "invalid date range",
			req: func() dto.UpdateBookingRequest {
				req := validReq
				req.CheckIn = "2026-09-14"
				req.CheckOut = "2026-09-14"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			err := svc.Update(ctx, tt.req)

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

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _, _ := newBookingService(ctrl)

	validReq := dto.DeleteBookingRequest{
		GuestID: "8a7b6c5d-4e3f-2a1b-9c8d-7e6f5a4b3c2d",
		RoomID:  "4f3c2e5b-9a1d-4c8e-b7f6-2d5a8c9e1f3b",
		CheckIn: "2026-09-10",
	}

	tests := []struct {
		name      string
		req       dto.DeleteBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful delete",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
			},
		},
		{
			name: "booking not found",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "invalid check-in date",
			req: func() dto.DeleteBookingRequest {
				req := validReq
				req.CheckIn = "not-a-date"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			err := svc.Delete(ctx, tt.req)

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

func TestBookingService_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockRoomRepo, _, _, _ := newBookingService(ctrl)

	validReq := dto.AvailabilityRequest{
		RoomID:   "4f3c2e5b-9a1d-4c8e-b7f6-2d5a8c9e1f3b",
		CheckIn:  "2026-09-10",
		CheckOut: "2026-09-13",
	}

	tests := []struct {
		name          string
		req           dto.AvailabilityRequest
		setupMock     func()
		wantErr       bool
		wantCode      int
		wantAvailable bool
	}{
		{
			name: "room is available",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantAvailable: true,
		},
		{
			name: "room has an overlapping booking",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantAvailable: false,
		},
		{
			name: "room not found",
			req:  validReq,
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "invalid date range",
			req: func() dto.AvailabilityRequest {
				req := validReq
				req.CheckOut = req.CheckIn

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.CheckAvailability(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAvailable, result.Available)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, mockCache, _ := newBookingService(ctrl)

	details := []model.BookingDetail{
		{
			Booking: model.Booking{
				GuestID:    "8a7b6c5d-4e3f-2a1b-9c8d-7e6f5a4b3c2d",
				RoomID:     "4f3c2e5b-9a1d-4c8e-b7f6-2d5a8c9e1f3b",
				NumGuests:  2,
				TotalPrice: 150000,
			},
			GuestName: "Jane Doe",
			RoomName:  "Ocean View Suite",
		},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "cache miss, fetched from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					CountDetails(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAllDetails(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(details, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantLen: 1,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					CountDetails(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result.Bookings, tt.wantLen)
			}
		})
	}
}
