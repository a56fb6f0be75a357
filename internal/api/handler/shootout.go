package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/penalties-go/internal/api/middleware"
	"github.com/mcoot/penalties-go/internal/api/request"
	"github.com/mcoot/penalties-go/internal/api/response"
	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/services/shootout"
)

// ShootoutHandler handles shootout endpoints
type ShootoutHandler struct {
	controller *shootout.Controller
}

// NewShootoutHandler creates a new shootout handler
func NewShootoutHandler(controller *shootout.Controller) *ShootoutHandler {
	return &ShootoutHandler{
		controller: controller,
	}
}

// Create handles POST /api/v1/shootouts
func (h *ShootoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	referee := middleware.MustGetReferee(r.Context())

	var req request.CreateShootoutRequest
	if err := decodeRequest(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	rules := model.Rules{
		RegulationRounds:        req.RegulationRounds,
		ExtendedScoreAfterKicks: req.ExtendedScoreAfterKicks,
	}

	s, err := h.controller.CreateShootout(r.Context(), referee.ID, req.TeamA, req.TeamB, rules)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ShootoutFromModel(s))
}

// Get handles GET /api/v1/shootouts/{id}
func (h *ShootoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.ShootoutID(mux.Vars(r)["id"])

	s, err := h.controller.GetPricedShootout(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ShootoutFromModel(s))
}

// Delete handles DELETE /api/v1/shootouts/{id}
func (h *ShootoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	referee := middleware.MustGetReferee(r.Context())
	id := model.ShootoutID(mux.Vars(r)["id"])

	if err := h.controller.DeleteShootout(r.Context(), id, referee.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Kick handles POST /api/v1/shootouts/{id}/kicks
func (h *ShootoutHandler) Kick(w http.ResponseWriter, r *http.Request) {
	referee := middleware.MustGetReferee(r.Context())
	id := model.ShootoutID(mux.Vars(r)["id"])

	var req request.KickRequest
	if err := decodeRequest(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	// Without a player the kick goes to whichever team is due
	if req.Player == "" {
		s, err := h.controller.Kick(r.Context(), id, referee.ID, *req.Success)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusCreated, response.KickResponse{Shootout: response.ShootoutFromModel(s)})
		return
	}

	s, history, err := h.controller.KickBy(r.Context(), id, referee.ID, req.Player, req.Team, *req.Success)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.KickResponse{
		Shootout: response.ShootoutFromModel(s),
		History:  history,
	})
}

// Score handles GET /api/v1/shootouts/{id}/score
func (h *ShootoutHandler) Score(w http.ResponseWriter, r *http.Request) {
	id := model.ShootoutID(mux.Vars(r)["id"])

	s, err := h.controller.GetPricedShootout(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreResponse{
		Score:    s.Score(),
		Extended: s.ExtendedScore(),
		Finished: s.Finished(),
	})
}

// History handles GET /api/v1/shootouts/{id}/players/{player}/history
func (h *ShootoutHandler) History(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.ShootoutID(vars["id"])
	player := vars["player"]

	history, err := h.controller.History(r.Context(), id, player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryResponse{
		Player:  player,
		History: history,
	})
}
