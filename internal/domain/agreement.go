package domain

import "time"

// Decision is one party's standing answer in a negotiation.
type Decision string

const (
	DecisionPending Decision = "pending"
	DecisionAccept  Decision = "accept"
	DecisionReject  Decision = "reject"
)

// Valid reports whether d is a known decision value.
func (d Decision) Valid() bool {
	switch d {
	case DecisionPending, DecisionAccept, DecisionReject:
		return true
	}
	return false
}

// AgreementStatus is the derived status of the two-party negotiation.
type AgreementStatus string

const (
	AgreementStatusPending       AgreementStatus = "pending"
	AgreementStatusAwaitingOwner AgreementStatus = "awaiting-owner"
	AgreementStatusAwaitingUser  AgreementStatus = "awaiting-user"
	AgreementStatusBothAccepted  AgreementStatus = "both-accepted"
	AgreementStatusRejected      AgreementStatus = "rejected"
)

// Terminal reports whether no further decisions are accepted.
func (s AgreementStatus) Terminal() bool {
	return s == AgreementStatusBothAccepted || s == AgreementStatusRejected
}

// DeriveStatus computes the agreement status from both decisions.
// Any reject wins; both accepts confirm; otherwise the pending side is named.
func DeriveStatus(user, owner Decision) AgreementStatus {
	switch {
	case user == DecisionReject || owner == DecisionReject:
		return AgreementStatusRejected
	case user == DecisionAccept && owner == DecisionAccept:
		return AgreementStatusBothAccepted
	case user == DecisionAccept:
		return AgreementStatusAwaitingOwner
	case owner == DecisionAccept:
		return AgreementStatusAwaitingUser
	}
	return AgreementStatusPending
}

// PartyRole tags which side of the negotiation an actor is on.
type PartyRole string

const (
	PartyRoleUser  PartyRole = "user"
	PartyRoleOwner PartyRole = "owner"
)

// Agreement links one renter, one owner, and one cart item. Decisions are the
// source of truth; Status is derived and stored for querying.
//
// ReservedTransitionID points at the ledger entry created when the agreement
// reached both-accepted; it doubles as the exactly-once marker for the
// reservation. SettledOn marks the payment callback as consumed.
type Agreement struct {
	ID                   int32           `json:"id"`
	CartItemID           int32           `json:"cart_item_id"`
	EquipmentID          int32           `json:"equipment_id"`
	UserID               int32           `json:"user_id"`
	OwnerID              int32           `json:"owner_id"`
	RentalStartDate      time.Time       `json:"rental_start_date"`
	RentalEndDate        time.Time       `json:"rental_end_date"`
	Delivery             bool            `json:"delivery"`
	DeliveryAddress      string          `json:"delivery_address,omitempty"`
	UserDecision         Decision        `json:"user_decision"`
	OwnerDecision        Decision        `json:"owner_decision"`
	Status               AgreementStatus `json:"agreement_status"`
	Revisions            int32           `json:"revisions"`
	ReservedTransitionID *int32          `json:"reserved_transition_id,omitempty"`
	SettledOn            *time.Time      `json:"settled_on,omitempty"`
	CreatedOn            time.Time       `json:"created_on"`
	UpdatedOn            time.Time       `json:"updated_on"`
}

// AgreementComment is one ordered, append-only note on an agreement, tagged
// with its author's role.
type AgreementComment struct {
	ID           int32     `json:"id"`
	AgreementID  int32     `json:"agreement_id"`
	AuthorID     int32     `json:"author_id"`
	Origin       PartyRole `json:"origin"`
	Comment      string    `json:"comment"`
	ChangesTerms bool      `json:"changes_terms"`
	CreatedOn    time.Time `json:"created_on"`
}
