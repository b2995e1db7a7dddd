package domain

import "time"

// Cart owns an ordered set of cart items. TotalCents is a derived cache,
// recomputed on demand over items with a both-accepted agreement; it is never
// an independent source of truth.
type Cart struct {
	ID         int32      `json:"id"`
	UserID     int32      `json:"user_id"`
	Name       string     `json:"name,omitempty"`
	Status     string     `json:"status"`
	TotalCents int32      `json:"total_cents"`
	Items      []CartItem `json:"items,omitempty"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
}

// RentalRate is the pricing period a cart item was added under.
type RentalRate string

const (
	RentalRateHourly RentalRate = "hourly"
	RentalRateDaily  RentalRate = "daily"
	RentalRateWeekly RentalRate = "weekly"
)

// CartItem snapshots the equipment price at add time. PriceCentsIfChanged is
// an optional override applied when the catalog price moves after addition.
// A cart item owns at most one agreement.
type CartItem struct {
	ID                   int32      `json:"id"`
	CartID               int32      `json:"cart_id"`
	EquipmentID          int32      `json:"equipment_id"`
	PriceCentsAtAddition int32      `json:"price_cents_at_addition"`
	PriceCentsIfChanged  *int32     `json:"price_cents_if_changed,omitempty"`
	RentalRate           RentalRate `json:"rental_rate"`
	RentalLength         int32      `json:"rental_length"`
	Quantity             int32      `json:"quantity"`
	CreatedOn            time.Time  `json:"created_on"`
	UpdatedOn            time.Time  `json:"updated_on"`
}

// EffectivePriceCents returns the override price when set, else the snapshot
// taken at addition.
func (i *CartItem) EffectivePriceCents() int32 {
	if i.PriceCentsIfChanged != nil {
		return *i.PriceCentsIfChanged
	}
	return i.PriceCentsAtAddition
}
