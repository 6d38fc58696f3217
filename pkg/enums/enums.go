package enums

// ItemKind distinguishes the two reservable unit types.
type ItemKind string

const (
	ItemKindCar  ItemKind = "car"
	ItemKindTour ItemKind = "tour"
)

func (k ItemKind) Valid() bool {
	return k == ItemKindCar || k == ItemKindTour
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentOption string

const (
	PaymentOptionDeposit PaymentOption = "deposit"
	PaymentOptionFull    PaymentOption = "full"
	PaymentOptionArrival PaymentOption = "on_arrival"
)

func (p PaymentOption) Valid() bool {
	switch p {
	case PaymentOptionDeposit, PaymentOptionFull, PaymentOptionArrival:
		return true
	}
	return false
}

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusDelivered OutboxStatus = "delivered"
	OutboxStatusFailed    OutboxStatus = "failed"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)
