package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Bucket identifies one inventory state bucket of an equipment listing.
type Bucket string

const (
	BucketAvailable   Bucket = "available"
	BucketReserved    Bucket = "reserved"
	BucketRented      Bucket = "rented"
	BucketMaintenance Bucket = "maintenance"
	BucketInTransit   Bucket = "in_transit"
	BucketDamaged     Bucket = "damaged"
)

// Buckets lists all inventory buckets in canonical order.
var Buckets = []Bucket{
	BucketAvailable,
	BucketReserved,
	BucketRented,
	BucketMaintenance,
	BucketInTransit,
	BucketDamaged,
}

// Equipment is one catalog listing. The quantity breakdown lives in
// QuantitySnapshot and is mutated only through ledger transitions.
type Equipment struct {
	ID               int32  `json:"id"`
	OwnerID          int32  `json:"owner_id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Description      string `json:"description"`
	RentalPriceCents int32  `json:"rental_price_cents"`
	CreatedOn        string `json:"created_on"`
}

// QuantitySnapshot is the live quantity breakdown for one equipment listing.
// Invariant: Available+Reserved+Rented+Maintenance+InTransit+Damaged == Total,
// all counters non-negative.
type QuantitySnapshot struct {
	EquipmentID int32     `json:"equipment_id"`
	Total       int32     `json:"total"`
	Available   int32     `json:"available"`
	Reserved    int32     `json:"reserved"`
	Rented      int32     `json:"rented"`
	Maintenance int32     `json:"maintenance"`
	InTransit   int32     `json:"in_transit"`
	Damaged     int32     `json:"damaged"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// Get returns the counter for one bucket.
func (s *QuantitySnapshot) Get(b Bucket) int32 {
	switch b {
	case BucketAvailable:
		return s.Available
	case BucketReserved:
		return s.Reserved
	case BucketRented:
		return s.Rented
	case BucketMaintenance:
		return s.Maintenance
	case BucketInTransit:
		return s.InTransit
	case BucketDamaged:
		return s.Damaged
	}
	return 0
}

func (s *QuantitySnapshot) set(b Bucket, v int32) {
	switch b {
	case BucketAvailable:
		s.Available = v
	case BucketReserved:
		s.Reserved = v
	case BucketRented:
		s.Rented = v
	case BucketMaintenance:
		s.Maintenance = v
	case BucketInTransit:
		s.InTransit = v
	case BucketDamaged:
		s.Damaged = v
	}
}

// BucketSum returns the sum of all bucket counters.
func (s *QuantitySnapshot) BucketSum() int32 {
	var sum int32
	for _, b := range Buckets {
		sum += s.Get(b)
	}
	return sum
}

// Validate checks the balance invariant and non-negativity.
func (s *QuantitySnapshot) Validate() error {
	for _, b := range Buckets {
		if s.Get(b) < 0 {
			return fmt.Errorf("%w: bucket %s is negative (%d)", ErrInvariantViolation, b, s.Get(b))
		}
	}
	if s.Total < 0 {
		return fmt.Errorf("%w: total is negative (%d)", ErrInvariantViolation, s.Total)
	}
	if sum := s.BucketSum(); sum != s.Total {
		return fmt.Errorf("%w: bucket sum %d != total %d", ErrInvariantViolation, sum, s.Total)
	}
	return nil
}

// TransitionDelta specifies signed per-bucket deltas for one transition.
// Deltas must sum to zero: transitions move units between buckets, they never
// create or destroy them.
type TransitionDelta map[Bucket]int32

// Sum returns the net quantity change of the delta.
func (d TransitionDelta) Sum() int32 {
	var sum int32
	for _, v := range d {
		sum += v
	}
	return sum
}

// Labels derives the human-readable previous_state/new_state pair from which
// buckets decreased and increased. Multi-bucket moves join names with "+".
func (d TransitionDelta) Labels() (previous, next string) {
	var from, to []string
	for _, b := range Buckets {
		switch v := d[b]; {
		case v < 0:
			from = append(from, string(b))
		case v > 0:
			to = append(to, string(b))
		}
	}
	sort.Strings(from)
	sort.Strings(to)
	return strings.Join(from, "+"), strings.Join(to, "+")
}

// Apply returns a copy of the snapshot with the delta applied, or
// ErrInvariantViolation if the delta is unbalanced or a bucket would go
// negative. The receiver is never mutated.
func (s *QuantitySnapshot) Apply(d TransitionDelta) (QuantitySnapshot, error) {
	if d.Sum() != 0 {
		return QuantitySnapshot{}, fmt.Errorf("%w: transition deltas sum to %d, want 0", ErrInvariantViolation, d.Sum())
	}
	next := *s
	for b, v := range d {
		next.set(b, next.Get(b)+v)
	}
	if err := next.Validate(); err != nil {
		return QuantitySnapshot{}, err
	}
	return next, nil
}

// StateTransition is one immutable entry of the transition log. It carries the
// full quantity snapshot after the change, plus the semantic state labels.
type StateTransition struct {
	ID             int32     `json:"id"`
	EquipmentID    int32     `json:"equipment_id"`
	IdempotencyKey string    `json:"idempotency_key"`
	Total          int32     `json:"total"`
	Available      int32     `json:"available"`
	Reserved       int32     `json:"reserved"`
	Rented         int32     `json:"rented"`
	Maintenance    int32     `json:"maintenance"`
	InTransit      int32     `json:"in_transit"`
	Damaged        int32     `json:"damaged"`
	PreviousState  string    `json:"previous_state"`
	NewState       string    `json:"new_state"`
	Reason         string    `json:"reason"`
	ChangedAt      time.Time `json:"changed_at"`
}

// Snapshot reconstructs the quantity snapshot recorded by the entry.
func (t *StateTransition) Snapshot() QuantitySnapshot {
	return QuantitySnapshot{
		EquipmentID: t.EquipmentID,
		Total:       t.Total,
		Available:   t.Available,
		Reserved:    t.Reserved,
		Rented:      t.Rented,
		Maintenance: t.Maintenance,
		InTransit:   t.InTransit,
		Damaged:     t.Damaged,
		UpdatedOn:   t.ChangedAt,
	}
}

// DailySummary is one derived row per (equipment, date), folded from the
// transition log. Disposable: a rebuild reconstructs it from the log alone.
type DailySummary struct {
	ID               int32  `json:"id"`
	EquipmentID      int32  `json:"equipment_id"`
	Date             string `json:"date"` // yyyy-mm-dd
	TotalQuantity    int32  `json:"total_quantity"`
	TotalAvailable   int32  `json:"total_available"`
	TotalReserved    int32  `json:"total_reserved"`
	TotalRented      int32  `json:"total_rented"`
	TotalCancelled   int32  `json:"total_cancelled"`
	TotalMaintenance int32  `json:"total_maintenance"`
	TotalInTransit   int32  `json:"total_in_transit"`
}
