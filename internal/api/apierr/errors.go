package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidTeams       = "INVALID_TEAMS"
	CodeInvalidPlayer      = "INVALID_PLAYER"
	CodeInvalidPrice       = "INVALID_PRICE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotReferee         = "NOT_REFEREE"
	CodeKickOnWrongTurn    = "KICK_ON_WRONG_TURN"
	CodeKickAfterFinished  = "KICK_AFTER_FINISHED"
	CodeRefereeNotFound    = "REFEREE_NOT_FOUND"
	CodeShootoutNotFound   = "SHOOTOUT_NOT_FOUND"
	CodeValuationNotFound  = "VALUATION_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRefereeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRefereeNotFound, "Referee not found"}}
	case errors.Is(err, model.ErrShootoutNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeShootoutNotFound, "Shootout not found"}}
	case errors.Is(err, model.ErrValuationNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeValuationNotFound, "Valuation not found"}}
	case errors.Is(err, model.ErrNotReferee):
		return &httpError{http.StatusForbidden, APIError{CodeNotReferee, "Only the shootout's referee can perform this action"}}
	case errors.Is(err, model.ErrKickOnWrongTurn):
		return &httpError{http.StatusConflict, APIError{CodeKickOnWrongTurn, "It is the other team's turn to kick"}}
	case errors.Is(err, model.ErrKickAfterFinished):
		return &httpError{http.StatusConflict, APIError{CodeKickAfterFinished, "Shootout is already finished"}}
	case errors.Is(err, model.ErrInvalidTeams):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeams, "Team names must be non-empty and distinct"}}
	case errors.Is(err, model.ErrInvalidPlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Player name is required"}}
	case errors.Is(err, model.ErrInvalidPrice):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPrice, "Price must not be negative"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
