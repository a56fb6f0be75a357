package handler

import (
	"net/http"

	"github.com/mcoot/penalties-go/internal/api/middleware"
	"github.com/mcoot/penalties-go/internal/api/request"
	"github.com/mcoot/penalties-go/internal/api/response"
	"github.com/mcoot/penalties-go/internal/services/auth"
)

// RefereeHandler handles referee account endpoints
type RefereeHandler struct {
	authService *auth.Service
}

// NewRefereeHandler creates a new referee handler
func NewRefereeHandler(authService *auth.Service) *RefereeHandler {
	return &RefereeHandler{
		authService: authService,
	}
}

// Register handles POST /api/v1/referees/register
func (h *RefereeHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeRequest(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.authService.RegisterReferee(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/referees/login
func (h *RefereeHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/referees/me
func (h *RefereeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	referee := middleware.MustGetReferee(r.Context())
	response.JSON(w, http.StatusOK, response.RefereeFromModel(referee))
}

// Logout handles POST /api/v1/referees/logout
func (h *RefereeHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}
