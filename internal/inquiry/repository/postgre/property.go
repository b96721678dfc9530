package postgre

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	repo "guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/internal/model"
)

// GetProperty retrieves a property by ID.
// Returns (nil, nil) when not found — do NOT return error for not-found.
func (r *implRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	const query = `
		SELECT id, name, check_in_time, check_out_time, parking, parking_details,
		       amenities, pets_allowed, smoking_allowed, cancellation_policy,
		       contact_phone, contact_email
		FROM properties
		WHERE id = $1`

	var p model.Property
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.CheckInTime, &p.CheckOutTime, &p.Parking, &p.ParkingDetails,
		pq.Array(&p.Amenities), &p.Policies.PetsAllowed, &p.Policies.SmokingAllowed,
		&p.Policies.CancellationPolicy, &p.Contact.Phone, &p.Contact.Email,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetProperty"), err)
		return nil, repo.ErrFailedToGet
	}
	return &p, nil
}
