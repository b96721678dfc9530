package model

// ParkingType describes the parking offered by a property.
type ParkingType string

const (
	ParkingFree ParkingType = "free"
	ParkingPaid ParkingType = "paid"
	ParkingNone ParkingType = "none"
)

// Property holds the property attributes used to answer guest inquiries.
type Property struct {
	ID             string
	Name           string
	CheckInTime    string // e.g. "3:00 PM"
	CheckOutTime   string // e.g. "11:00 AM"
	Parking        ParkingType
	ParkingDetails string
	Amenities      []string
	Policies       PropertyPolicies
	Contact        ContactInfo
}

// PropertyPolicies holds house rules and booking policies.
type PropertyPolicies struct {
	PetsAllowed        bool
	SmokingAllowed     bool
	CancellationPolicy string
}

// ContactInfo is the property's public contact information.
type ContactInfo struct {
	Phone string
	Email string
}
