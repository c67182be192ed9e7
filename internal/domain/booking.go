package domain

// StopType identifies a stop's position in the route.
type StopType string

const (
	StopTypeOrigin      StopType = "origin"
	StopTypeDestination StopType = "destination"
)

// ActionType identifies what happens to a passenger at a stop.
type ActionType string

const (
	ActionTypePickUp  ActionType = "pick_up"
	ActionTypeDropOff ActionType = "drop_off"
)

// BookingRequest is the inbound ride-booking request body.
// Coordinates are pointers so that an omitted field is distinguishable
// from a legitimate zero coordinate.
type BookingRequest struct {
	PassengerName          string   `json:"passenger_name"`
	PassengerPhone         string   `json:"passenger_phone"`
	ProductID              string   `json:"product_id"`
	OriginLat              *float64 `json:"origin_lat"`
	OriginLng              *float64 `json:"origin_lng"`
	OriginAddressName      string   `json:"origin_address_name"`
	DestinationLat         *float64 `json:"destination_lat"`
	DestinationLng         *float64 `json:"destination_lng"`
	DestinationAddressName string   `json:"destination_address_name"`
	ScheduledAt            string   `json:"scheduled_at"`
	AcceptedTerms          *bool    `json:"user_accepted_terms_and_privacy"`
}

// Passenger identifies the rider on a stop action.
type Passenger struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// StopAction ties a pick-up or drop-off to a passenger.
type StopAction struct {
	Type      ActionType `json:"type"`
	Passenger Passenger  `json:"passenger"`
}

// Location is a point on the route.
type Location struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	AddressName string  `json:"address_name"`
}

// Stop is one leg endpoint in the order route.
type Stop struct {
	Type     StopType     `json:"type"`
	Location Location     `json:"location"`
	Actions  []StopAction `json:"actions"`
}

// Payment describes how the order is paid for.
type Payment struct {
	Type string `json:"type"`
}

// BookingPayload is the Gett order-creation request body. Invariant:
// exactly two stops, origin first, destination second.
type BookingPayload struct {
	Stops         []Stop  `json:"stops"`
	Payment       Payment `json:"payment"`
	PartnerID     string  `json:"partner_id"`
	Category      string  `json:"category"`
	Locale        string  `json:"lc"`
	ProductID     string  `json:"product_id"`
	ScheduledAt   string  `json:"scheduled_at,omitempty"`
	AcceptedTerms bool    `json:"user_accepted_terms_and_privacy"`
}
