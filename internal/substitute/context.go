package substitute

import (
	"strconv"
	"strings"

	"guest-response-agent/internal/model"
)

// displayDateFormat renders reservation dates for guest-facing text.
const displayDateFormat = "January 2, 2006"

// BuildContext flattens property and reservation data into the placeholder
// vocabulary used by response templates. Absent or empty source data omits
// the key entirely so unfilled placeholders are detectable downstream.
func BuildContext(p *model.Property, r *model.Reservation) map[string]string {
	ctx := map[string]string{}

	if p != nil {
		put(ctx, "check_in_time", p.CheckInTime)
		put(ctx, "check_out_time", p.CheckOutTime)
		put(ctx, "parking_details", p.ParkingDetails)
		put(ctx, "property_name", p.Name)

		if len(p.Amenities) > 0 {
			ctx["amenities_list"] = strings.Join(p.Amenities, ", ")
		}

		put(ctx, "cancellation_policy", p.Policies.CancellationPolicy)
		ctx["pets_allowed"] = yesNo(p.Policies.PetsAllowed)
		ctx["smoking_allowed"] = yesNo(p.Policies.SmokingAllowed)

		put(ctx, "contact_phone", p.Contact.Phone)
		put(ctx, "contact_email", p.Contact.Email)
	}

	if r != nil {
		put(ctx, "guest_name", r.GuestName)
		if r.GuestCount > 0 {
			ctx["guest_count"] = strconv.Itoa(r.GuestCount)
		}
		if r.RoomType != "" {
			ctx["room_type"] = titleCase(string(r.RoomType))
		}
		if !r.CheckInDate.IsZero() {
			ctx["reservation_check_in"] = r.CheckInDate.Format(displayDateFormat)
		}
		if !r.CheckOutDate.IsZero() {
			ctx["reservation_check_out"] = r.CheckOutDate.Format(displayDateFormat)
		}
		if len(r.SpecialRequests) > 0 {
			ctx["special_requests"] = strings.Join(r.SpecialRequests, ", ")
		}
	}

	return ctx
}

func put(ctx map[string]string, key, value string) {
	if value != "" {
		ctx[key] = value
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// titleCase uppercases the first letter of each space-separated word,
// e.g. "deluxe suite" becomes "Deluxe Suite".
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
