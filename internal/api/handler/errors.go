package handler

import (
	"net/http"

	"github.com/mcoot/penalties-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidTeams       = apierr.CodeInvalidTeams
	CodeInvalidPlayer      = apierr.CodeInvalidPlayer
	CodeInvalidPrice       = apierr.CodeInvalidPrice
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeNotReferee         = apierr.CodeNotReferee
	CodeKickOnWrongTurn    = apierr.CodeKickOnWrongTurn
	CodeKickAfterFinished  = apierr.CodeKickAfterFinished
	CodeRefereeNotFound    = apierr.CodeRefereeNotFound
	CodeShootoutNotFound   = apierr.CodeShootoutNotFound
	CodeValuationNotFound  = apierr.CodeValuationNotFound
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
