package controllers

import (
	"net/http"

	"github.com/angelmondragon/vendo-storefront/api/middleware"
	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
)

// CatalogSource exposes the current catalog snapshot; *catalog.Provider satisfies it.
type CatalogSource interface {
	Snapshot() *catalog.Snapshot
}

func sessionIDFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return sessionID, nil
}
