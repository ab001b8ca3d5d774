package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/vendo-storefront/api/responses"
	"github.com/angelmondragon/vendo-storefront/api/validators"
	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/cartview"
	"github.com/angelmondragon/vendo-storefront/internal/pricing"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
)

// CartFetch renders the session cart.
func CartFetch(svc cart.Service, renderer cartview.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, CartResponse{Cart: renderer.Build(current)})
	}
}

// CartAddItem adds a configured item to the session cart.
func CartAddItem(svc cart.Service, renderer cartview.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddToCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, line, err := svc.Add(r.Context(), sessionID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, CartResponse{Cart: renderer.Build(current), LineID: line.ID})
	}
}

// CartUpdateItem sets a line's quantity by line id.
func CartUpdateItem(svc cart.Service, renderer cartview.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID := chi.URLParam(r, "lineId")
		ctx := logg.WithLineID(r.Context(), lineID)
		current, err := svc.UpdateQuantity(ctx, sessionID, lineID, *payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, CartResponse{Cart: renderer.Build(current)})
	}
}

// CartRemoveItem drops a line; unknown ids are a no-op.
func CartRemoveItem(svc cart.Service, renderer cartview.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID := chi.URLParam(r, "lineId")
		ctx := logg.WithLineID(r.Context(), lineID)
		current, err := svc.Remove(ctx, sessionID, lineID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, CartResponse{Cart: renderer.Build(current)})
	}
}

func CartClear(svc cart.Service, renderer cartview.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, CartResponse{Cart: renderer.Build(current)})
	}
}

func CartTotal(svc cart.Service, renderer cartview.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total := current.TotalPrice()
		responses.WriteSuccess(w, CartTotalResponse{
			Total:     pricing.Format(total),
			Formatted: renderer.Formatter.Currency(total),
			ItemCount: current.ItemCount(),
		})
	}
}

// CartCheckout hands the cart off as a plain-text summary. No payment is taken
// and the cart is left as is.
func CartCheckout(svc cart.Service, renderer cartview.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current, err := svc.Checkout(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, CheckoutResponse{
			Summary: renderer.Summary(current),
			Total:   pricing.Format(current.TotalPrice()),
			Cart:    renderer.Build(current),
		})
	}
}
