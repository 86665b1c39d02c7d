package domain

import (
	"fmt"
	"strings"
	"time"
)

type SurfboardCondition string

const (
	SurfboardConditionNew       SurfboardCondition = "New"
	SurfboardConditionExcellent SurfboardCondition = "Excellent"
	SurfboardConditionGood      SurfboardCondition = "Good"
	SurfboardConditionFair      SurfboardCondition = "Fair"
	SurfboardConditionPoor      SurfboardCondition = "Poor"
)

func (c SurfboardCondition) IsValid() bool {
	switch c {
	case SurfboardConditionNew, SurfboardConditionExcellent, SurfboardConditionGood,
		SurfboardConditionFair, SurfboardConditionPoor:
		return true
	}
	return false
}

type Surfboard struct {
	ID               int32              `json:"id"`
	OwnerID          int32              `json:"owner_id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Condition        SurfboardCondition `json:"condition"`
	SalePriceCents   *Cents             `json:"sale_price,omitempty"`
	PricePerDayCents *Cents             `json:"price_per_day,omitempty"`
	ImageURL         *string            `json:"image_url,omitempty"`
	Dimensions       *string            `json:"dimensions,omitempty"`
	Location         *string            `json:"location,omitempty"`
	ForRent          bool               `json:"for_rent"`
	ForSale          bool               `json:"for_sale"`
	IsStored         bool               `json:"is_stored"`
	StoragePartnerID *int32             `json:"storage_partner_id,omitempty"`
	StorageStartDate *time.Time         `json:"storage_start_date,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// DailyPrice returns the per-day rental price, or false when the board has no
// usable price.
func (s *Surfboard) DailyPrice() (Cents, bool) {
	if s.PricePerDayCents == nil || *s.PricePerDayCents <= 0 {
		return 0, false
	}
	return *s.PricePerDayCents, true
}

// SurfboardFilter narrows the public listing. Nil fields are not applied.
type SurfboardFilter struct {
	ForRent  *bool
	ForSale  *bool
	Location string
}

// SurfboardPatch is a partial update of the owner-editable listing fields.
// Storage fields change only through the storage workflow.
type SurfboardPatch struct {
	Title            *string
	Description      *string
	Condition        *SurfboardCondition
	SalePriceCents   *Cents
	PricePerDayCents *Cents
	ImageURL         *string
	Dimensions       *string
	Location         *string
	ForRent          *bool
	ForSale          *bool
}

func (p SurfboardPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Condition == nil &&
		p.SalePriceCents == nil && p.PricePerDayCents == nil && p.ImageURL == nil &&
		p.Dimensions == nil && p.Location == nil && p.ForRent == nil && p.ForSale == nil
}

// Validate checks the patch against the listing schema.
func (p SurfboardPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidOperation)
	}
	if p.Condition != nil && !p.Condition.IsValid() {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidOperation, *p.Condition)
	}
	if p.SalePriceCents != nil && *p.SalePriceCents < 0 {
		return fmt.Errorf("%w: sale price must not be negative", ErrInvalidOperation)
	}
	if p.PricePerDayCents != nil && *p.PricePerDayCents < 0 {
		return fmt.Errorf("%w: price per day must not be negative", ErrInvalidOperation)
	}
	return nil
}
