// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a reservation is successfully
// created.  It carries enough information for the channel-sync consumer to
// record the booking for external channel managers without querying the
// primary database.  The sync integration is a stub: events are consumed
// and journaled, no external protocol is spoken.
type ReservationCreatedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	HotelID       uint64  `json:"hotel_id"`
	HotelName     string  `json:"hotel_name"`
	RoomID        uint64  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	GuestName     string  `json:"guest_name"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	Nights        int     `json:"nights"`
	TotalPrice    float64 `json:"total_price"`
	CreatedAt     string  `json:"created_at"`
}
