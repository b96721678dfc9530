package model

import "time"

// RoomType describes the booked room category.
type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
	RoomStudio   RoomType = "studio"
)

// Reservation holds the reservation attributes used to answer guest inquiries.
type Reservation struct {
	ID              string
	PropertyID      string
	GuestName       string
	GuestEmail      string
	GuestCount      int
	RoomType        RoomType
	CheckInDate     time.Time
	CheckOutDate    time.Time
	SpecialRequests []string
	BookingDate     time.Time
}
