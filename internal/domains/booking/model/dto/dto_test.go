package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lunabay/internal/domains/booking/model"
	"lunabay/internal/domains/booking/model/dto"
)

func TestCreateBookingRequest_Dates(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{
			name:     "valid range",
			checkIn:  "2026-09-10",
			checkOut: "2026-09-13",
		},
		{
			name:     "wrong layout",
			checkIn:  "10/09/2026",
			checkOut: "2026-09-13",
			wantErr:  true,
		},
		{
			name:     "impossible date",
			checkIn:  "2026-02-30",
			checkOut: "2026-03-02",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{CheckIn: tt.checkIn, CheckOut: tt.checkOut}

			checkIn, checkOut, err := req.Dates()

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.checkIn, checkIn.Format("2006-01-02"))
			assert.Equal(t, tt.checkOut, checkOut.Format("2006-01-02"))
		})
	}
}

func TestUpdateBookingRequest_Key(t *testing.T) {
	req := dto.UpdateBookingRequest{
		GuestID:         "8a7b6c5d-4e3f-2a1b-9c8d-7e6f5a4b3c2d",
		RoomID:          "4f3c2e5b-9a1d-4c8e-b7f6-2d5a8c9e1f3b",
		OriginalCheckIn: "2026-09-10",
	}

	key, err := req.Key()

	assert.NoError(t, err)
	assert.Equal(t, req.GuestID, key.GuestID)
	assert.Equal(t, req.RoomID, key.RoomID)
	assert.Equal(t, "2026-09-10", key.CheckIn.Format("2006-01-02"))
}

func TestBookingResponse_FromModel(t *testing.T) {
	booking := model.Booking{
		GuestID:    "8a7b6c5d-4e3f-2a1b-9c8d-7e6f5a4b3c2d",
		RoomID:     "4f3c2e5b-9a1d-4c8e-b7f6-2d5a8c9e1f3b",
		CheckIn:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		NumGuests:  2,
		TotalPrice: 150000,
	}

	res := dto.BookingResponse{}
	res.FromModel(booking)

	assert.Equal(t, "2026-09-10", res.CheckIn)
	assert.Equal(t, "2026-09-13", res.CheckOut)
	assert.Equal(t, int64(150000), res.TotalPrice)
}
