package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/vendo-storefront/api/responses"
	"github.com/angelmondragon/vendo-storefront/api/validators"
	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/menu"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
)

// MenuList returns category sections with cards reflecting the session cart.
func MenuList(source CatalogSource, carts cart.Service, builder menu.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil || carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current, err := carts.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot := source.Snapshot()
		category := validators.SanitizeString(r.URL.Query().Get("category"), maxCategoryParam)
		responses.WriteSuccess(w, builder.Build(snapshot.Categories(), snapshot.Items(), current, category))
	}
}

// MenuItemCard returns a single product card.
func MenuItemCard(source CatalogSource, carts cart.Service, builder menu.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil || carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu unavailable"))
			return
		}
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, ok := source.Snapshot().Item(chi.URLParam(r, "itemId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found"))
			return
		}
		current, err := carts.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, builder.Card(item, current.QuantityFor(item.ID)))
	}
}
