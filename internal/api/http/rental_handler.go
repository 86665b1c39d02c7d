package http

import (
	"net/http"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var req createRentalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	rental, err := h.rentalSvc.CreateRental(r.Context(), actor, service.CreateRentalInput{
		SurfboardID: req.SurfboardID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

// List handles GET /rentals?role=owner|renter|all&status=
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	rentals, err := h.rentalSvc.ListRentals(r.Context(), actor, q.Get("role"), q.Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// UpdateStatus handles PUT /rentals/{id}/status
func (h *RentalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	rental, err := h.rentalSvc.TransitionRental(r.Context(), actor, id, domain.RentalStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Rental status updated to " + string(rental.Status),
		"rental_id": rental.ID,
	})
}
