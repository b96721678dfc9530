package postgre

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	repo "guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/internal/model"
)

// GetReservation retrieves a reservation by ID.
// Returns (nil, nil) when not found — do NOT return error for not-found.
func (r *implRepository) GetReservation(ctx context.Context, id string) (*model.Reservation, error) {
	const query = `
		SELECT id, property_id, guest_name, guest_email, guest_count, room_type,
		       check_in_date, check_out_date, special_requests, booking_date
		FROM reservations
		WHERE id = $1`

	var res model.Reservation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.PropertyID, &res.GuestName, &res.GuestEmail, &res.GuestCount,
		&res.RoomType, &res.CheckInDate, &res.CheckOutDate,
		pq.Array(&res.SpecialRequests), &res.BookingDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetReservation"), err)
		return nil, repo.ErrFailedToGet
	}
	return &res, nil
}
