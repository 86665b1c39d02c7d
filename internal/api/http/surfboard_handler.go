package http

import (
	"net/http"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/service"
)

type SurfboardHandler struct {
	surfboardSvc service.SurfboardService
	rentalSvc    service.RentalService
	storageSvc   service.StorageService
}

func NewSurfboardHandler(surfboardSvc service.SurfboardService, rentalSvc service.RentalService, storageSvc service.StorageService) *SurfboardHandler {
	return &SurfboardHandler{surfboardSvc: surfboardSvc, rentalSvc: rentalSvc, storageSvc: storageSvc}
}

// List handles GET /surfboards?for_rent=&for_sale=&location=
func (h *SurfboardHandler) List(w http.ResponseWriter, r *http.Request) {
	forRent, err := queryBool(r, "for_rent")
	if err != nil {
		writeError(w, r, err)
		return
	}
	forSale, err := queryBool(r, "for_sale")
	if err != nil {
		writeError(w, r, err)
		return
	}

	boards, err := h.surfboardSvc.ListSurfboards(r.Context(), domain.SurfboardFilter{
		ForRent:  forRent,
		ForSale:  forSale,
		Location: r.URL.Query().Get("location"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

func (h *SurfboardHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	boards, err := h.surfboardSvc.ListMySurfboards(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

func (h *SurfboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	board, err := h.surfboardSvc.GetSurfboard(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *SurfboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var req surfboardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	board, err := h.surfboardSvc.CreateSurfboard(r.Context(), actor, req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, board)
}

func (h *SurfboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req surfboardPatchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	board, err := h.surfboardSvc.UpdateSurfboard(r.Context(), actor, id, req.toPatch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *SurfboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.surfboardSvc.DeleteSurfboard(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Surfboard deleted successfully", "surfboard_id": id})
}

// Rent handles POST /surfboards/{id}/rent
func (h *SurfboardHandler) Rent(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req rentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	rental, err := h.rentalSvc.CreateRental(r.Context(), actor, service.CreateRentalInput{
		SurfboardID: id,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

// Store handles POST /surfboards/{id}/store
func (h *SurfboardHandler) Store(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req storeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	agreement, err := h.storageSvc.RequestStorage(r.Context(), actor, id, req.StoragePartnerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}

// Release handles DELETE /surfboards/{id}/store
func (h *SurfboardHandler) Release(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	agreement, err := h.storageSvc.ReleaseStorage(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}
