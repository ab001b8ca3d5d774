package controllers

import (
	"net/http"

	"github.com/angelmondragon/vendo-storefront/api/responses"
	"github.com/angelmondragon/vendo-storefront/api/validators"
	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
)

const maxCategoryParam = 64

// StorefrontPage returns the hero, header, floating cart and mobile nav.
func StorefrontPage(source CatalogSource, carts cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil || carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
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

		category := validators.SanitizeString(r.URL.Query().Get("category"), maxCategoryParam)
		responses.WriteSuccess(w, storefront.Build(source.Snapshot(), current.ItemCount(), category))
	}
}
