package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"equipme-backend/internal/security"
)

// Handlers bundles the handler set the router mounts.
type Handlers struct {
	Inventory *InventoryHandler
	Agreement *AgreementHandler
	Cart      *CartHandler
	Summary   *SummaryHandler
}

// NewRouter mounts the v1 API. Everything sits behind the bearer token
// middleware except the payment callback, which the payment collaborator
// authenticates with a shared secret.
func NewRouter(h *Handlers, tokens security.TokenManager, callbackSecret string) *mux.Router {
	router := mux.NewRouter()

	router.Handle("/v1/agreements/{id:[0-9]+}/payment",
		CallbackAuth(callbackSecret)(http.HandlerFunc(h.Agreement.ConfirmPayment))).
		Methods(http.MethodPost)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.Use(AuthMiddleware(tokens))

	v1.HandleFunc("/equipment", h.Inventory.OnboardEquipment).Methods(http.MethodPost)
	v1.HandleFunc("/equipment", h.Inventory.ListEquipment).Methods(http.MethodGet)
	v1.HandleFunc("/equipment/{id:[0-9]+}/price", h.Inventory.UpdatePrice).Methods(http.MethodPost)
	v1.HandleFunc("/equipment/{id:[0-9]+}/inventory", h.Inventory.GetInventory).Methods(http.MethodGet)
	v1.HandleFunc("/equipment/{id:[0-9]+}/transitions", h.Inventory.ApplyTransition).Methods(http.MethodPost)
	v1.HandleFunc("/equipment/{id:[0-9]+}/stock", h.Inventory.AdjustTotal).Methods(http.MethodPost)
	v1.HandleFunc("/equipment/{id:[0-9]+}/summary", h.Summary.ListSummaries).Methods(http.MethodGet)
	v1.HandleFunc("/equipment/{id:[0-9]+}/summary/rebuild", h.Summary.RebuildSummaries).Methods(http.MethodPost)

	v1.HandleFunc("/agreements", h.Agreement.RequestAgreement).Methods(http.MethodPost)
	v1.HandleFunc("/agreements/{id:[0-9]+}", h.Agreement.GetAgreement).Methods(http.MethodGet)
	v1.HandleFunc("/agreements/{id:[0-9]+}/decision", h.Agreement.SetDecision).Methods(http.MethodPost)
	v1.HandleFunc("/agreements/{id:[0-9]+}/comments", h.Agreement.AddComment).Methods(http.MethodPost)

	v1.HandleFunc("/carts", h.Cart.CreateCart).Methods(http.MethodPost)
	v1.HandleFunc("/carts/{id:[0-9]+}", h.Cart.GetCart).Methods(http.MethodGet)
	v1.HandleFunc("/carts/{id:[0-9]+}", h.Cart.RemoveCart).Methods(http.MethodDelete)
	v1.HandleFunc("/carts/{id:[0-9]+}/items", h.Cart.AddItem).Methods(http.MethodPost)
	v1.HandleFunc("/carts/{id:[0-9]+}/total", h.Cart.RecomputeTotal).Methods(http.MethodPost)
	v1.HandleFunc("/cart-items/{item_id:[0-9]+}/price", h.Cart.OverridePrice).Methods(http.MethodPost)
	v1.HandleFunc("/cart-items/{item_id:[0-9]+}", h.Cart.RemoveItem).Methods(http.MethodDelete)

	return router
}
