package model

import (
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldGuestID    = "guest_id"
	FieldRoomID     = "room_id"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldNumGuests  = "num_guests"
	FieldTotalPrice = "total_price"
	FieldCreatedAt  = "created_at"
)

// Booking is addressed by the composite key (guest_id, room_id, check_in);
// there is no surrogate identifier. TotalPrice is integer cents.
type Booking struct {
	GuestID    string    `db:"guest_id"`
	RoomID     string    `db:"room_id"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	NumGuests  int       `db:"num_guests"`
	TotalPrice int64     `db:"total_price"`
	CreatedAt  time.Time `db:"created_at"`
}

// Key identifies a single booking.
type Key struct {
	GuestID string
	RoomID  string
	CheckIn time.Time
}

// BookingDetail is the admin listing read model joining guest and room data.
type BookingDetail struct {
	Booking
	GuestName  string `db:"guest_name"  table:"guests" column:"full_name"`
	GuestEmail string `db:"guest_email" table:"guests" column:"email"`
	GuestPhone string `db:"guest_phone" table:"guests" column:"phone"`
	RoomName   string `db:"room_name"   table:"rooms"  column:"name"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN guests ON guests.id = bookings.guest_id JOIN rooms ON rooms.id = bookings.room_id"
}
