package response

import (
	"time"

	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/services/auth"
)

// Referee represents a referee in API responses
type Referee struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// RefereeFromModel converts a model.Referee to a response Referee
func RefereeFromModel(r *model.Referee) Referee {
	return Referee{
		ID:          string(r.ID),
		DisplayName: r.DisplayName,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Referee      Referee `json:"referee"`
	SessionToken string  `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Referee:      RefereeFromModel(&s.Referee),
		SessionToken: s.Token,
	}
}

// Rules represents shootout rules
type Rules struct {
	RegulationRounds        int `json:"regulation_rounds"`
	ExtendedScoreAfterKicks int `json:"extended_score_after_kicks"`
}

// Kick represents a single recorded kick
type Kick struct {
	Team    string `json:"team"`
	Player  string `json:"player,omitempty"`
	Success bool   `json:"success"`
}

// Shootout represents the full derived state of a shootout
type Shootout struct {
	ID       string    `json:"id"`
	TeamA    string    `json:"team_a"`
	TeamB    string    `json:"team_b"`
	Rules    Rules     `json:"rules"`
	Score    string    `json:"score"`
	GoalsA   int       `json:"goals_a"`
	GoalsB   int       `json:"goals_b"`
	Round    int       `json:"round"`
	DueTeam  *string   `json:"due_team"`
	Finished bool      `json:"finished"`
	Winner   *string   `json:"winner"`
	Kicks    []Kick    `json:"kicks"`
	Referee  string    `json:"referee_id"`
	Created  time.Time `json:"created_at"`
	Updated  time.Time `json:"updated_at"`
}

// ShootoutFromModel converts a model.Shootout, including derived state
func ShootoutFromModel(s *model.Shootout) Shootout {
	summary := s.Summary()

	kicks := make([]Kick, len(summary.Kicks))
	for i, k := range summary.Kicks {
		kicks[i] = Kick{
			Team:    s.TeamName(k.Side),
			Player:  k.Player,
			Success: k.Success,
		}
	}

	resp := Shootout{
		ID:    string(s.ID),
		TeamA: s.TeamA,
		TeamB: s.TeamB,
		Rules: Rules{
			RegulationRounds:        s.Rules.RegulationRounds,
			ExtendedScoreAfterKicks: s.Rules.ExtendedScoreAfterKicks,
		},
		Score:    summary.Score,
		GoalsA:   summary.GoalsA,
		GoalsB:   summary.GoalsB,
		Round:    summary.Round,
		Finished: summary.Finished,
		Kicks:    kicks,
		Referee:  string(s.RefereeID),
		Created:  s.CreatedAt,
		Updated:  s.UpdatedAt,
	}
	if summary.DueTeam != "" {
		resp.DueTeam = &summary.DueTeam
	}
	if summary.Winner != "" {
		resp.Winner = &summary.Winner
	}
	return resp
}

// KickResponse is returned after recording a kick
type KickResponse struct {
	Shootout Shootout `json:"shootout"`
	// History is the kicking player's history, present for explicit kicks
	History []bool `json:"history,omitempty"`
}

// ScoreResponse is the response for the score endpoint
type ScoreResponse struct {
	Score    string `json:"score"`
	Extended bool   `json:"extended"`
	Finished bool   `json:"finished"`
}

// HistoryResponse is a player's kick history in one shootout
type HistoryResponse struct {
	Player  string `json:"player"`
	History []bool `json:"history"`
}

// Valuation represents a player's price
type Valuation struct {
	Player    string    `json:"player"`
	Price     int64     `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValuationFromModel converts a model.Valuation
func ValuationFromModel(v *model.Valuation) Valuation {
	return Valuation{
		Player:    v.Player,
		Price:     v.Price,
		UpdatedAt: v.UpdatedAt,
	}
}
