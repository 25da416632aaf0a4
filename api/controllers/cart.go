package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/nourzaidi/nourfashion-backend/api/middleware"
	"github.com/nourzaidi/nourfashion-backend/api/responses"
	"github.com/nourzaidi/nourfashion-backend/api/validators"
	cartsvc "github.com/nourzaidi/nourfashion-backend/internal/cart"
	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
)

// CartFetch returns the caller's cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		dto, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type addItemRequest struct {
	Key      string          `json:"key" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"omitempty,min=1"`
	Image    string          `json:"image,omitempty"`
}

// CartAddItem merges an item into the caller's cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.AddItem(r.Context(), sessionID, cartsvc.AddItemInput{
			Key:      payload.Key,
			Name:     payload.Name,
			Price:    payload.Price,
			Quantity: payload.Quantity,
			Image:    payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdateItem sets an absolute quantity for one line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateItem(r.Context(), sessionID, chi.URLParam(r, "itemKey"), payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartRemoveItem drops one line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		dto, err := svc.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "itemKey"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartClear empties the cart. The client calls this after a completed
// WhatsApp hand-off.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		dto, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type setOpenRequest struct {
	Open bool `json:"open"`
}

// CartSetOpen persists the drawer flag for the session.
func CartSetOpen(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload setOpenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SetOpen(r.Context(), sessionID, payload.Open)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartCheckout builds the WhatsApp hand-off without touching the cart.
func CartCheckout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		dto, err := svc.Checkout(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func requireSession(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return "", false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id is required"))
		return "", false
	}
	return sessionID, true
}
