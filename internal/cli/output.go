package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Referee:
		o.printReferee(v)
	case AuthResult:
		o.printAuthResult(v)
	case Shootout:
		o.printShootout(v)
	case KickResult:
		o.printKickResult(v)
	case ScoreResult:
		o.printScoreResult(v)
	case HistoryResult:
		o.printHistoryResult(v)
	case Valuation:
		o.printValuation(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Referee response type (matches API)
type Referee struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// AuthResult combines referee and token
type AuthResult struct {
	Referee      Referee `json:"referee"`
	SessionToken string  `json:"session_token"`
}

// Kick response type
type Kick struct {
	Team    string `json:"team"`
	Player  string `json:"player,omitempty"`
	Success bool   `json:"success"`
}

// Rules response type
type Rules struct {
	RegulationRounds        int `json:"regulation_rounds"`
	ExtendedScoreAfterKicks int `json:"extended_score_after_kicks"`
}

// Shootout response type
type Shootout struct {
	ID       string  `json:"id"`
	TeamA    string  `json:"team_a"`
	TeamB    string  `json:"team_b"`
	Rules    Rules   `json:"rules"`
	Score    string  `json:"score"`
	GoalsA   int     `json:"goals_a"`
	GoalsB   int     `json:"goals_b"`
	Round    int     `json:"round"`
	DueTeam  *string `json:"due_team"`
	Finished bool    `json:"finished"`
	Winner   *string `json:"winner"`
	Kicks    []Kick  `json:"kicks"`
}

// KickResult is returned after recording a kick
type KickResult struct {
	Shootout Shootout `json:"shootout"`
	History  []bool   `json:"history,omitempty"`
}

// ScoreResult response type
type ScoreResult struct {
	Score    string `json:"score"`
	Extended bool   `json:"extended"`
	Finished bool   `json:"finished"`
}

// HistoryResult response type
type HistoryResult struct {
	Player  string `json:"player"`
	History []bool `json:"history"`
}

// Valuation response type
type Valuation struct {
	Player string `json:"player"`
	Price  int64  `json:"price"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printReferee(r Referee) {
	fmt.Fprintf(o.w, "Referee: %s (%s)\n", r.DisplayName, r.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Fprintf(o.w, "Logged in as %s (%s)\n", a.Referee.DisplayName, a.Referee.ID)
	fmt.Fprintln(o.w, "Token saved")
}

func (o *Output) printShootout(s Shootout) {
	fmt.Fprintf(o.w, "Shootout %s: %s v %s\n", s.ID, s.TeamA, s.TeamB)
	fmt.Fprintf(o.w, "Score:  %s\n", s.Score)
	switch {
	case s.Finished && s.Winner != nil:
		fmt.Fprintf(o.w, "Status: finished, %s win\n", *s.Winner)
	case s.DueTeam != nil:
		fmt.Fprintf(o.w, "Status: round %d, %s to kick\n", s.Round, *s.DueTeam)
	}

	if len(s.Kicks) == 0 {
		return
	}

	fmt.Fprintln(o.w, "Kicks:")
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	for i, k := range s.Kicks {
		player := k.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", i/2+1, k.Team, player, outcome(k.Success))
	}
	_ = tw.Flush()
}

func (o *Output) printKickResult(k KickResult) {
	o.printShootout(k.Shootout)
	if len(k.History) > 0 {
		fmt.Fprintf(o.w, "Player history: %s\n", formatHistory(k.History))
	}
}

func (o *Output) printScoreResult(s ScoreResult) {
	fmt.Fprintln(o.w, s.Score)
}

func (o *Output) printHistoryResult(h HistoryResult) {
	if len(h.History) == 0 {
		fmt.Fprintf(o.w, "%s has not taken a kick\n", h.Player)
		return
	}
	fmt.Fprintf(o.w, "%s: %s\n", h.Player, formatHistory(h.History))
}

func (o *Output) printValuation(v Valuation) {
	fmt.Fprintf(o.w, "%s: %d\n", v.Player, v.Price)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Server status: %s\n", h.Status)
}

func outcome(success bool) string {
	if success {
		return "goal"
	}
	return "miss"
}

func formatHistory(history []bool) string {
	parts := make([]string, len(history))
	for i, h := range history {
		parts[i] = outcome(h)
	}
	return strings.Join(parts, ", ")
}
