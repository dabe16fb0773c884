// Package controllers contains the HTTP handlers. Controllers decode
// and validate input, call a service, and write the JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/auth"
	"github.com/shashiranjanraj/repwear/pkg/logger"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

// currentUserID returns the authenticated user's ObjectID. The auth
// middleware guarantees a valid hex id on protected routes.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	hex := auth.UserIDFromCtx(r.Context())
	if hex == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func isAdmin(r *http.Request) bool {
	c := auth.ClaimsFromCtx(r.Context())
	return c != nil && c.Role == "admin"
}

// pathID parses the {param} URL segment as an ObjectID.
func pathID(r *http.Request, param string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, param))
}

// respondErr maps service sentinel errors to the HTTP error taxonomy.
// Unknown errors are logged and surface as a generic 500.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "")

	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateSlug),
		errors.Is(err, services.ErrAlreadySubscribed):
		response.Conflict(w, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrVariantRequired),
		errors.Is(err, services.ErrVariantNotFound),
		errors.Is(err, services.ErrStockSumMismatch),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrBadSignature),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrTooManyFiles),
		errors.Is(err, services.ErrUnsupportedType),
		errors.Is(err, services.ErrNoFile):
		response.BadRequest(w, err.Error())

	default:
		logger.WithCtx(r.Context()).Error("request failed",
			"path", r.URL.Path, "error", err)
		response.ServerError(w)
	}
}
