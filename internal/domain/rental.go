package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusApproved  RentalStatus = "approved"
	RentalStatusRejected  RentalStatus = "rejected"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
)

// LiveRentalStatuses hold a surfboard for their date range.
var LiveRentalStatuses = []RentalStatus{RentalStatusPending, RentalStatusApproved, RentalStatusActive}

func (s RentalStatus) IsValid() bool {
	switch s {
	case RentalStatusPending, RentalStatusApproved, RentalStatusRejected,
		RentalStatusCancelled, RentalStatusActive, RentalStatusCompleted:
		return true
	}
	return false
}

func (s RentalStatus) IsTerminal() bool {
	switch s {
	case RentalStatusRejected, RentalStatusCancelled, RentalStatusCompleted:
		return true
	}
	return false
}

// RentalParty identifies the side of a rental an actor is on.
type RentalParty int

const (
	RentalPartyNone RentalParty = iota
	RentalPartyOwner
	RentalPartyRenter
)

// TransitionRule describes who may move a rental into a target status and from
// which statuses.
type TransitionRule struct {
	AllowedParties []RentalParty
	From           []RentalStatus
}

var rentalTransitions = map[RentalStatus]TransitionRule{
	RentalStatusApproved: {
		AllowedParties: []RentalParty{RentalPartyOwner},
		From:           []RentalStatus{RentalStatusPending},
	},
	RentalStatusRejected: {
		AllowedParties: []RentalParty{RentalPartyOwner},
		From:           []RentalStatus{RentalStatusPending},
	},
	RentalStatusCancelled: {
		AllowedParties: []RentalParty{RentalPartyOwner, RentalPartyRenter},
		From:           []RentalStatus{RentalStatusPending, RentalStatusApproved},
	},
	RentalStatusActive: {
		AllowedParties: []RentalParty{RentalPartyOwner},
		From:           []RentalStatus{RentalStatusApproved},
	},
	RentalStatusCompleted: {
		AllowedParties: []RentalParty{RentalPartyOwner},
		From:           []RentalStatus{RentalStatusActive},
	},
}

// TransitionRuleFor returns the rule for entering target. Statuses that can
// never be entered through a transition (pending) have no rule.
func TransitionRuleFor(target RentalStatus) (TransitionRule, bool) {
	rule, ok := rentalTransitions[target]
	return rule, ok
}

func (r TransitionRule) Permits(party RentalParty) bool {
	for _, p := range r.AllowedParties {
		if p == party {
			return true
		}
	}
	return false
}

func (r TransitionRule) AcceptsFrom(current RentalStatus) bool {
	for _, s := range r.From {
		if s == current {
			return true
		}
	}
	return false
}

// CanTransition reports whether from -> to is an edge of the rental state machine.
func CanTransition(from, to RentalStatus) bool {
	rule, ok := rentalTransitions[to]
	return ok && rule.AcceptsFrom(from)
}

type Rental struct {
	ID               int32        `json:"id"`
	SurfboardID      int32        `json:"surfboard_id"`
	RenterID         int32        `json:"renter_id"`
	OwnerID          int32        `json:"owner_id"`
	StartDate        time.Time    `json:"start_date"`
	EndDate          time.Time    `json:"end_date"`
	TotalAmountCents Cents        `json:"total_amount"`
	Status           RentalStatus `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// PartyOf returns which side of the rental userID is on.
func (r *Rental) PartyOf(userID int32) RentalParty {
	switch userID {
	case r.OwnerID:
		return RentalPartyOwner
	case r.RenterID:
		return RentalPartyRenter
	}
	return RentalPartyNone
}

// RentalDetails is a rental enriched with the joined surfboard, party and
// storage information shown to its participants.
type RentalDetails struct {
	Rental
	SurfboardTitle         string  `json:"surfboard_title"`
	SurfboardImage         *string `json:"surfboard_image,omitempty"`
	OwnerEmail             string  `json:"owner_email"`
	RenterEmail            string  `json:"renter_email"`
	StoragePartnerName     *string `json:"storage_partner_name,omitempty"`
	StoragePartnerLocation *string `json:"storage_partner_location,omitempty"`

	// Transactions is filled only for single-rental reads.
	Transactions []Transaction `json:"transactions,omitempty"`
}

// RentalRole selects which of the caller's rentals a listing returns.
type RentalRole string

const (
	RentalRoleOwner  RentalRole = "owner"
	RentalRoleRenter RentalRole = "renter"
	RentalRoleAll    RentalRole = "all"
)

type RentalFilter struct {
	UserID int32
	Role   RentalRole
	Status RentalStatus
}
