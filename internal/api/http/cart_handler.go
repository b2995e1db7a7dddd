package http

import (
	"net/http"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/service"
)

type CartHandler struct {
	carts service.CartService
}

func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type createCartRequest struct {
	Name string `json:"name"`
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var req createCartRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cart, err := h.carts.CreateCart(r.Context(), actor, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	cartID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid cart id"})
		return
	}

	cart, err := h.carts.GetCart(r.Context(), actor, cartID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type addItemRequest struct {
	EquipmentID  int32             `json:"equipment_id"`
	RentalRate   domain.RentalRate `json:"rental_rate"`
	RentalLength int32             `json:"rental_length"`
	Quantity     int32             `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	cartID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid cart id"})
		return
	}

	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.carts.AddItem(r.Context(), actor, cartID, req.EquipmentID, req.RentalRate, req.RentalLength, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type overridePriceRequest struct {
	PriceCents int32 `json:"price_cents"`
}

func (h *CartHandler) OverridePrice(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	itemID, ok := pathID(r, "item_id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	var req overridePriceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.carts.OverridePrice(r.Context(), actor, itemID, req.PriceCents); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	itemID, ok := pathID(r, "item_id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	if err := h.carts.RemoveItem(r.Context(), actor, itemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CartHandler) RemoveCart(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	cartID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid cart id"})
		return
	}

	if err := h.carts.RemoveCart(r.Context(), actor, cartID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type cartTotalResponse struct {
	TotalCents int32 `json:"total_cents"`
}

func (h *CartHandler) RecomputeTotal(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	cartID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid cart id"})
		return
	}

	total, err := h.carts.RecomputeTotal(r.Context(), actor, cartID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartTotalResponse{TotalCents: total})
}
