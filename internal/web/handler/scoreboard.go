package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/services/shootout"
	"github.com/mcoot/penalties-go/internal/web/templates"
)

// refreshSeconds is how often an unfinished scoreboard reloads itself
const refreshSeconds = 10

// ScoreboardHandler serves the public shootout pages
type ScoreboardHandler struct {
	controller *shootout.Controller
	logger     *slog.Logger
}

// NewScoreboardHandler creates a new ScoreboardHandler
func NewScoreboardHandler(controller *shootout.Controller, logger *slog.Logger) *ScoreboardHandler {
	return &ScoreboardHandler{
		controller: controller,
		logger:     logger,
	}
}

// Home renders the lookup form
func (h *ScoreboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := templates.HomeData{
		PageData: templates.PageData{Title: "Home"},
	}
	render(w, r, http.StatusOK, templates.Home(data))
}

// Lookup redirects the lookup form to the scoreboard
func (h *ScoreboardHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	id := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("id")))
	if id == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/shootouts/"+url.PathEscape(id), http.StatusSeeOther)
}

// View renders the scoreboard for a shootout
func (h *ScoreboardHandler) View(w http.ResponseWriter, r *http.Request) {
	id := model.ShootoutID(mux.Vars(r)["id"])

	s, err := h.controller.GetPricedShootout(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrShootoutNotFound) {
			render(w, r, http.StatusNotFound, templates.Error(templates.ErrorData{
				PageData: templates.PageData{Title: "Not Found"},
				Heading:  "Shootout not found",
				Message:  "No shootout exists with ID " + string(id) + ".",
			}))
			return
		}
		h.logger.Error("failed to load shootout",
			slog.String("shootout_id", string(id)),
			slog.String("error", err.Error()),
		)
		render(w, r, http.StatusInternalServerError, templates.Error(templates.ErrorData{
			PageData: templates.PageData{Title: "Error"},
			Heading:  "Internal Server Error",
			Message:  "Something went wrong. Please try again later.",
		}))
		return
	}

	render(w, r, http.StatusOK, templates.Scoreboard(scoreboardData(s)))
}

func scoreboardData(s *model.Shootout) templates.ScoreboardData {
	summary := s.Summary()

	rows := make([]templates.KickRow, len(summary.Kicks))
	for i, k := range summary.Kicks {
		rows[i] = templates.KickRow{
			Round:   i/2 + 1,
			Team:    s.TeamName(k.Side),
			Player:  k.Player,
			Success: k.Success,
		}
	}

	page := templates.PageData{Title: s.TeamA + " v " + s.TeamB}
	if !summary.Finished {
		page.RefreshSeconds = refreshSeconds
	}

	return templates.ScoreboardData{
		PageData: page,
		ID:       string(s.ID),
		TeamA:    s.TeamA,
		TeamB:    s.TeamB,
		Score:    summary.Score,
		Round:    summary.Round,
		DueTeam:  summary.DueTeam,
		Finished: summary.Finished,
		Winner:   summary.Winner,
		Kicks:    rows,
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = c.Render(r.Context(), w)
}
