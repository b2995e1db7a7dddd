package http

import (
	"net/http"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/service"
)

type AgreementHandler struct {
	agreements service.AgreementService
}

func NewAgreementHandler(agreements service.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreements: agreements}
}

func (h *AgreementHandler) RequestAgreement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var req service.AgreementRequest
	if !decodeBody(w, r, &req) {
		return
	}

	agreement, err := h.agreements.RequestAgreement(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, agreement)
}

type agreementResponse struct {
	Agreement *domain.Agreement         `json:"agreement"`
	Comments  []domain.AgreementComment `json:"comments"`
}

func (h *AgreementHandler) GetAgreement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	agreementID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid agreement id"})
		return
	}

	agreement, comments, err := h.agreements.GetAgreement(r.Context(), actor, agreementID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agreementResponse{Agreement: agreement, Comments: comments})
}

type decisionRequest struct {
	Decision domain.Decision `json:"decision"`
}

func (h *AgreementHandler) SetDecision(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	agreementID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid agreement id"})
		return
	}

	var req decisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	agreement, err := h.agreements.SetDecision(r.Context(), actor, agreementID, req.Decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}

type commentRequest struct {
	Comment      string `json:"comment"`
	ChangesTerms bool   `json:"changes_terms"`
}

func (h *AgreementHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	agreementID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid agreement id"})
		return
	}

	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.agreements.AddComment(r.Context(), actor, agreementID, req.Comment, req.ChangesTerms)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

type paymentCallbackRequest struct {
	Succeeded bool `json:"succeeded"`
}

// ConfirmPayment is called by the payment collaborator, not an end user, so it
// sits behind CallbackAuth instead of the bearer token middleware.
func (h *AgreementHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	agreementID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid agreement id"})
		return
	}

	var req paymentCallbackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	agreement, err := h.agreements.ConfirmPayment(r.Context(), agreementID, req.Succeeded)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}
