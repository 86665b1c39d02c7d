package http

import (
	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=user partner"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type surfboardRequest struct {
	Title            string        `json:"title" validate:"required,max=200"`
	Description      string        `json:"description"`
	Condition        string        `json:"condition" validate:"required,oneof=New Excellent Good Fair Poor"`
	SalePriceCents   *domain.Cents `json:"sale_price" validate:"omitempty,gte=0"`
	PricePerDayCents *domain.Cents `json:"price_per_day" validate:"omitempty,gte=0"`
	ImageURL         *string       `json:"image_url" validate:"omitempty,url"`
	Dimensions       *string       `json:"dimensions" validate:"omitempty,max=100"`
	Location         *string       `json:"location" validate:"omitempty,max=200"`
	ForRent          bool          `json:"for_rent"`
	ForSale          bool          `json:"for_sale"`
}

func (r surfboardRequest) toInput() service.CreateSurfboardInput {
	return service.CreateSurfboardInput{
		Title:            r.Title,
		Description:      r.Description,
		Condition:        domain.SurfboardCondition(r.Condition),
		SalePriceCents:   r.SalePriceCents,
		PricePerDayCents: r.PricePerDayCents,
		ImageURL:         r.ImageURL,
		Dimensions:       r.Dimensions,
		Location:         r.Location,
		ForRent:          r.ForRent,
		ForSale:          r.ForSale,
	}
}

// surfboardPatchRequest carries only the fields present in the body.
type surfboardPatchRequest struct {
	Title            *string       `json:"title" validate:"omitempty,min=1,max=200"`
	Description      *string       `json:"description"`
	Condition        *string       `json:"condition" validate:"omitempty,oneof=New Excellent Good Fair Poor"`
	SalePriceCents   *domain.Cents `json:"sale_price" validate:"omitempty,gte=0"`
	PricePerDayCents *domain.Cents `json:"price_per_day" validate:"omitempty,gte=0"`
	ImageURL         *string       `json:"image_url" validate:"omitempty,url"`
	Dimensions       *string       `json:"dimensions" validate:"omitempty,max=100"`
	Location         *string       `json:"location" validate:"omitempty,max=200"`
	ForRent          *bool         `json:"for_rent"`
	ForSale          *bool         `json:"for_sale"`
}

func (r surfboardPatchRequest) toPatch() domain.SurfboardPatch {
	patch := domain.SurfboardPatch{
		Title:            r.Title,
		Description:      r.Description,
		SalePriceCents:   r.SalePriceCents,
		PricePerDayCents: r.PricePerDayCents,
		ImageURL:         r.ImageURL,
		Dimensions:       r.Dimensions,
		Location:         r.Location,
		ForRent:          r.ForRent,
		ForSale:          r.ForSale,
	}
	if r.Condition != nil {
		c := domain.SurfboardCondition(*r.Condition)
		patch.Condition = &c
	}
	return patch
}

type rentRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type createRentalRequest struct {
	SurfboardID int32  `json:"surfboard_id" validate:"required,gt=0"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type storeRequest struct {
	StoragePartnerID int32 `json:"storage_partner_id" validate:"required,gt=0"`
}

type partnerRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Description    *string  `json:"description"`
	Location       string   `json:"location" validate:"required,max=200"`
	Address        string   `json:"address" validate:"required"`
	ContactEmail   string   `json:"contact_email" validate:"required,email"`
	ContactPhone   *string  `json:"contact_phone" validate:"omitempty,max=50"`
	CommissionRate *float64 `json:"commission_rate" validate:"required,gte=0,lte=100"`
	MaxCapacity    *int32   `json:"max_capacity" validate:"omitempty,gte=0"`
}

func (r partnerRequest) toInput() service.RegisterPartnerInput {
	return service.RegisterPartnerInput{
		Name:           r.Name,
		Description:    r.Description,
		Location:       r.Location,
		Address:        r.Address,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		CommissionRate: *r.CommissionRate,
		MaxCapacity:    r.MaxCapacity,
	}
}

type partnerPatchRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string  `json:"description"`
	Location       *string  `json:"location" validate:"omitempty,min=1,max=200"`
	Address        *string  `json:"address" validate:"omitempty,min=1"`
	ContactEmail   *string  `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   *string  `json:"contact_phone" validate:"omitempty,max=50"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
	MaxCapacity    *int32   `json:"max_capacity" validate:"omitempty,gte=0"`
}

func (r partnerPatchRequest) toPatch() domain.StoragePartnerPatch {
	return domain.StoragePartnerPatch{
		Name:           r.Name,
		Description:    r.Description,
		Location:       r.Location,
		Address:        r.Address,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		CommissionRate: r.CommissionRate,
		MaxCapacity:    r.MaxCapacity,
	}
}
