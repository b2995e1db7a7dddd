package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/service"
)

type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func pathID(r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

type onboardEquipmentRequest struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Description      string `json:"description"`
	RentalPriceCents int32  `json:"rental_price_cents"`
	InitialStock     int32  `json:"initial_stock"`
}

func (h *InventoryHandler) OnboardEquipment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var req onboardEquipmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	eq := &domain.Equipment{
		Name:             req.Name,
		Category:         req.Category,
		Make:             req.Make,
		Model:            req.Model,
		Description:      req.Description,
		RentalPriceCents: req.RentalPriceCents,
	}
	if err := h.inventory.OnboardEquipment(r.Context(), actor, eq, req.InitialStock); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *InventoryHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	fleet, err := h.inventory.ListEquipment(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fleet)
}

type updatePriceRequest struct {
	PriceCents int32 `json:"price_cents"`
}

func (h *InventoryHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	equipmentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	var req updatePriceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.inventory.UpdatePrice(r.Context(), actor, equipmentID, req.PriceCents); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	snap, err := h.inventory.GetInventory(r.Context(), equipmentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type applyTransitionRequest struct {
	Deltas map[string]int32 `json:"deltas"`
	Reason string           `json:"reason"`
}

func (h *InventoryHandler) ApplyTransition(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	equipmentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	var req applyTransitionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	delta := make(domain.TransitionDelta, len(req.Deltas))
	for name, v := range req.Deltas {
		delta[domain.Bucket(name)] = v
	}

	snap, err := h.inventory.ApplyTransition(r.Context(), actor, equipmentID, delta, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type adjustTotalRequest struct {
	Delta  int32  `json:"delta"`
	Reason string `json:"reason"`
}

func (h *InventoryHandler) AdjustTotal(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	equipmentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	var req adjustTotalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	snap, err := h.inventory.AdjustTotal(r.Context(), actor, equipmentID, req.Delta, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
