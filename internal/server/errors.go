package server

import (
	"errors"
	"net/http"

	"github.com/iajcodes/HireC/internal/auth"
	"github.com/iajcodes/HireC/internal/ingestion"
	"github.com/iajcodes/HireC/internal/roster"
	"github.com/iajcodes/HireC/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		emptyEmail      *auth.ErrEmptyEmail
		invalidCreds    *auth.ErrInvalidCredentials
		validationErr   *ingestion.ValidationError
		missingField    *types.MissingFieldError
		notFound        *roster.ErrCandidateNotFound
		ingestionFailed *ingestion.Error
	)

	switch {
	case errors.As(err, &emptyEmail), errors.As(err, &validationErr), errors.As(err, &missingField):
		return http.StatusBadRequest
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, ingestion.ErrUploadInProgress):
		return http.StatusConflict
	case errors.As(err, &ingestionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
