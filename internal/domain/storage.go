package domain

import (
	"fmt"
	"strings"
	"time"
)

type AgreementStatus string

const (
	AgreementStatusPending  AgreementStatus = "pending"
	AgreementStatusActive   AgreementStatus = "active"
	AgreementStatusAccepted AgreementStatus = "accepted"
	AgreementStatusRejected AgreementStatus = "rejected"
	AgreementStatusReleased AgreementStatus = "released"
)

// HeldAgreementStatuses mean the partner is physically holding the board.
var HeldAgreementStatuses = []AgreementStatus{AgreementStatusActive, AgreementStatusAccepted}

// OpenAgreementStatuses block a new storage request for the same board.
var OpenAgreementStatuses = []AgreementStatus{AgreementStatusPending, AgreementStatusActive, AgreementStatusAccepted}

func (s AgreementStatus) IsValid() bool {
	switch s {
	case AgreementStatusPending, AgreementStatusActive, AgreementStatusAccepted,
		AgreementStatusRejected, AgreementStatusReleased:
		return true
	}
	return false
}

func (s AgreementStatus) IsHeld() bool {
	return s == AgreementStatusActive || s == AgreementStatusAccepted
}

func (s AgreementStatus) IsOpen() bool {
	return s == AgreementStatusPending || s.IsHeld()
}

type StorageAgreement struct {
	ID          int32           `json:"id"`
	SurfboardID int32           `json:"surfboard_id"`
	PartnerID   int32           `json:"partner_id"`
	OwnerID     int32           `json:"owner_id"`
	StartDate   time.Time       `json:"start_date"`
	Status      AgreementStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// PartnerUserID is the user owning PartnerID. Populated by reads that
	// join storage_partners.
	PartnerUserID int32 `json:"-"`
}

// StorageDecision is a partner's answer to a pending storage request.
type StorageDecision string

const (
	StorageDecisionAccepted StorageDecision = "accepted"
	StorageDecisionRejected StorageDecision = "rejected"
)

func (d StorageDecision) IsValid() bool {
	return d == StorageDecisionAccepted || d == StorageDecisionRejected
}

type StoragePartner struct {
	ID             int32     `json:"id"`
	UserID         int32     `json:"user_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	Location       string    `json:"location"`
	Address        string    `json:"address"`
	ContactEmail   string    `json:"contact_email"`
	ContactPhone   *string   `json:"contact_phone,omitempty"`
	CommissionRate float64   `json:"commission_rate"`
	MaxCapacity    *int32    `json:"max_capacity,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StoredSurfboard is a board held by a partner together with its owner's
// contact address.
type StoredSurfboard struct {
	Surfboard
	OwnerEmail string `json:"owner_email"`
}

// StoragePartnerPatch is a partial update of a partner profile. Verification
// is not patchable.
type StoragePartnerPatch struct {
	Name           *string
	Description    *string
	Location       *string
	Address        *string
	ContactEmail   *string
	ContactPhone   *string
	CommissionRate *float64
	MaxCapacity    *int32
}

func (p StoragePartnerPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Location == nil && p.Address == nil &&
		p.ContactEmail == nil && p.ContactPhone == nil && p.CommissionRate == nil && p.MaxCapacity == nil
}

func (p StoragePartnerPatch) Validate() error {
	for field, v := range map[string]*string{"name": p.Name, "location": p.Location, "address": p.Address, "contact_email": p.ContactEmail} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidOperation, field)
		}
	}
	if p.CommissionRate != nil && (*p.CommissionRate < 0 || *p.CommissionRate > 100) {
		return fmt.Errorf("%w: commission rate must be between 0 and 100", ErrInvalidOperation)
	}
	if p.MaxCapacity != nil && *p.MaxCapacity < 0 {
		return fmt.Errorf("%w: max capacity must not be negative", ErrInvalidOperation)
	}
	return nil
}

// SurfboardStorage is the storage state of a surfboard row.
type SurfboardStorage struct {
	IsStored  bool
	PartnerID *int32
	StartDate *time.Time
}
