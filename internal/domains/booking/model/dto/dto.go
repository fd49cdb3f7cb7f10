package dto

import (
	"time"

	"lunabay/internal/domains/booking/model"
	"lunabay/shared"
	"lunabay/shared/constant"
)

// CreateBookingRequest is the public booking payload. TotalPrice is part of
// the wire contract but never trusted; the service recomputes the price
// from the room's stored rate.
type CreateBookingRequest struct {
	FullName   string `json:"fullName"   validate:"required,max=100"`
	Email      string `json:"email"      validate:"required,email,max=100"`
	Phone      string `json:"phone"      validate:"omitempty,max=20"`
	RoomID     string `json:"roomId"     validate:"required,uuid"`
	CheckIn    string `json:"checkIn"    validate:"required,dateonly"`
	CheckOut   string `json:"checkOut"   validate:"required,dateonly"`
	Guests     int    `json:"guests"     validate:"required,gte=1,lte=10"`
	TotalPrice int64  `json:"totalPrice" validate:"omitempty"`
}

func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	return parseDateRange(c.CheckIn, c.CheckOut)
}

type UpdateBookingRequest struct {
	GuestID         string `json:"guest_id"        validate:"required,uuid"`
	RoomID          string `json:"room_id"         validate:"required,uuid"`
	OriginalCheckIn string `json:"originalCheckIn" validate:"required,dateonly"`
	CheckIn         string `json:"checkIn"         validate:"required,dateonly"`
	CheckOut        string `json:"checkOut"        validate:"required,dateonly"`
	NumGuests       int    `json:"num_guests"      validate:"required,gte=1,lte=10"`
	FullName        string `json:"fullName"        validate:"omitempty,max=100"`
	Phone           string `json:"phone"           validate:"omitempty,max=20"`
}

func (u *UpdateBookingRequest) Key() (model.Key, error) {
	originalCheckIn, err := time.Parse(constant.DateOnlyLayout, u.OriginalCheckIn)
	if err != nil {
		return model.Key{}, err
	}

	return model.Key{
		GuestID: u.GuestID,
		RoomID:  u.RoomID,
		CheckIn: originalCheckIn,
	}, nil
}

func (u *UpdateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	return parseDateRange(u.CheckIn, u.CheckOut)
}

type DeleteBookingRequest struct {
	GuestID string `json:"guest_id" validate:"required,uuid"`
	RoomID  string `json:"room_id"  validate:"required,uuid"`
	CheckIn string `json:"checkIn"  validate:"required,dateonly"`
}

func (d *DeleteBookingRequest) Key() (model.Key, error) {
	checkIn, err := time.Parse(constant.DateOnlyLayout, d.CheckIn)
	if err != nil {
		return model.Key{}, err
	}

	return model.Key{
		GuestID: d.GuestID,
		RoomID:  d.RoomID,
		CheckIn: checkIn,
	}, nil
}

type AvailabilityRequest struct {
	RoomID   string `validate:"required,uuid"`
	CheckIn  string `validate:"required,dateonly"`
	CheckOut string `validate:"required,dateonly"`
}

func (a *AvailabilityRequest) Dates() (checkIn, checkOut time.Time, err error) {
	return parseDateRange(a.CheckIn, a.CheckOut)
}

type AvailabilityResponse struct {
	RoomID    string `json:"roomId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Available bool   `json:"available"`
}

type BookingResponse struct {
	GuestID    string `json:"guestId"`
	RoomID     string `json:"roomId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	NumGuests  int    `json:"guests"`
	TotalPrice int64  `json:"totalPrice"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyLayout)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyLayout)
	r.NumGuests = model.NumGuests
	r.TotalPrice = model.TotalPrice
}

type BookingDetailResponse struct {
	GuestID    string `json:"guestId"`
	RoomID     string `json:"roomId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	NumGuests  int    `json:"guests"`
	TotalPrice int64  `json:"totalPrice"`
	CreatedAt  string `json:"createdAt"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`
	RoomName   string `json:"roomName"`
}

func (r *BookingDetailResponse) FromModel(model model.BookingDetail) {
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyLayout)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyLayout)
	r.NumGuests = model.NumGuests
	r.TotalPrice = model.TotalPrice
	r.CreatedAt = model.CreatedAt.Format(constant.DateFormat)
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.RoomName = model.RoomName
}

type GetBookingsResponse struct {
	Bookings  []BookingDetailResponse `json:"bookings"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingDetailResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func parseDateRange(checkInStr, checkOutStr string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyLayout, checkInStr)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = time.Parse(constant.DateOnlyLayout, checkOutStr)
	if err != nil {
		return checkIn, checkOut, err
	}

	return checkIn, checkOut, nil
}
