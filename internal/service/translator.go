package service

import (
	"github.com/hindih/gett-gpt-proxy/internal/domain"
)

// Fixed values in the Gett order schema.
const (
	paymentTypeCash        = "cash"
	categoryTransportation = "transportation"
	localeEnglish          = "en"
)

// TranslateBooking maps an inbound booking request into the Gett
// order-creation schema. Pure function: the only failure mode is a
// missing required field.
//
// The derived payload always has exactly two stops, origin first, with
// pick-up and drop-off actions addressed to the same passenger.
func TranslateBooking(req domain.BookingRequest, partnerID string) (*domain.BookingPayload, error) {
	if err := validateBooking(req); err != nil {
		return nil, err
	}

	passenger := domain.Passenger{
		Name:  req.PassengerName,
		Phone: req.PassengerPhone,
	}

	acceptedTerms := true
	if req.AcceptedTerms != nil {
		acceptedTerms = *req.AcceptedTerms
	}

	return &domain.BookingPayload{
		Stops: []domain.Stop{
			{
				Type: domain.StopTypeOrigin,
				Location: domain.Location{
					Lat:         *req.OriginLat,
					Lng:         *req.OriginLng,
					AddressName: req.OriginAddressName,
				},
				Actions: []domain.StopAction{
					{Type: domain.ActionTypePickUp, Passenger: passenger},
				},
			},
			{
				Type: domain.StopTypeDestination,
				Location: domain.Location{
					Lat:         *req.DestinationLat,
					Lng:         *req.DestinationLng,
					AddressName: req.DestinationAddressName,
				},
				Actions: []domain.StopAction{
					{Type: domain.ActionTypeDropOff, Passenger: passenger},
				},
			},
		},
		Payment:       domain.Payment{Type: paymentTypeCash},
		PartnerID:     partnerID,
		Category:      categoryTransportation,
		Locale:        localeEnglish,
		ProductID:     req.ProductID,
		ScheduledAt:   req.ScheduledAt,
		AcceptedTerms: acceptedTerms,
	}, nil
}

func validateBooking(req domain.BookingRequest) error {
	switch {
	case req.PassengerName == "":
		return &MissingFieldError{Field: "passenger_name"}
	case req.PassengerPhone == "":
		return &MissingFieldError{Field: "passenger_phone"}
	case req.ProductID == "":
		return &MissingFieldError{Field: "product_id"}
	case req.OriginLat == nil:
		return &MissingFieldError{Field: "origin_lat"}
	case req.OriginLng == nil:
		return &MissingFieldError{Field: "origin_lng"}
	case req.DestinationLat == nil:
		return &MissingFieldError{Field: "destination_lat"}
	case req.DestinationLng == nil:
		return &MissingFieldError{Field: "destination_lng"}
	}
	return nil
}
