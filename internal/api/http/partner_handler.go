package http

import (
	"net/http"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/service"
)

type PartnerHandler struct {
	partnerSvc service.PartnerService
	storageSvc service.StorageService
}

func NewPartnerHandler(partnerSvc service.PartnerService, storageSvc service.StorageService) *PartnerHandler {
	return &PartnerHandler{partnerSvc: partnerSvc, storageSvc: storageSvc}
}

func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partnerSvc.ListPartners(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partners)
}

func (h *PartnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	partner, err := h.partnerSvc.GetPartner(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

func (h *PartnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var req partnerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	partner, err := h.partnerSvc.RegisterPartner(r.Context(), actor, req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Storage partner registration submitted for review",
		"partner": partner,
	})
}

func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req partnerPatchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	partner, err := h.partnerSvc.UpdatePartner(r.Context(), actor, id, req.toPatch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

// Verify handles PUT /partners/{id}/verify (admin only)
func (h *PartnerHandler) Verify(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	partner, err := h.partnerSvc.VerifyPartner(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

func (h *PartnerHandler) StoredSurfboards(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	boards, err := h.storageSvc.ListStoredSurfboards(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

// StorageRequests handles GET /partners/storage-requests?status=
func (h *PartnerHandler) StorageRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	requests, err := h.storageSvc.ListRequests(r.Context(), actor, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// DecideStorageRequest handles PUT /partners/storage-requests/{requestId}
func (h *PartnerHandler) DecideStorageRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "requestId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	agreement, err := h.storageSvc.DecideRequest(r.Context(), actor, id, domain.StorageDecision(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Storage request " + string(agreement.Status),
		"requestId": agreement.ID,
	})
}
