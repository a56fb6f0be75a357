package model

import (
	"fmt"
	"time"
)

// ShootoutID uniquely identifies a shootout
type ShootoutID string

// Side identifies one of the two teams in a shootout
type Side int

const (
	SideA Side = iota // Kicks first
	SideB
)

// Default rules
const (
	DefaultRegulationRounds        = 5
	DefaultExtendedScoreAfterKicks = 14
)

// Rules controls regulation length and score presentation
type Rules struct {
	// RegulationRounds is the number of kicks each team takes before sudden death
	RegulationRounds int `json:"regulation_rounds"`
	// ExtendedScoreAfterKicks is the kick count after which Score uses the
	// priced format. Negative disables the priced format.
	ExtendedScoreAfterKicks int `json:"extended_score_after_kicks"`
}

// DefaultRules returns the standard best-of-five rules
func DefaultRules() Rules {
	return Rules{
		RegulationRounds:        DefaultRegulationRounds,
		ExtendedScoreAfterKicks: DefaultExtendedScoreAfterKicks,
	}
}

// withDefaults fills zero values from DefaultRules
func (r Rules) withDefaults() Rules {
	if r.RegulationRounds <= 0 {
		r.RegulationRounds = DefaultRegulationRounds
	}
	if r.ExtendedScoreAfterKicks == 0 {
		r.ExtendedScoreAfterKicks = DefaultExtendedScoreAfterKicks
	}
	return r
}

// Kick is a single recorded penalty
type Kick struct {
	Side    Side   `json:"side"`
	Player  string `json:"player,omitempty"` // Empty for implicit-turn kicks
	Success bool   `json:"success"`
}

// PriceLookup reports the aggregate price of missed kicks for a team or player
type PriceLookup interface {
	MissedPlayersTotalPrice(name string) int64
}

// PriceLookupFunc adapts a function to PriceLookup
type PriceLookupFunc func(name string) int64

// MissedPlayersTotalPrice calls f(name)
func (f PriceLookupFunc) MissedPlayersTotalPrice(name string) int64 {
	return f(name)
}

// Shootout is the state machine for a two-team penalty shootout.
// Score, turn and finished status are all derived from Kicks.
// A Shootout is not safe for concurrent use.
type Shootout struct {
	ID        ShootoutID `json:"id"`
	TeamA     string     `json:"team_a"`
	TeamB     string     `json:"team_b"`
	RefereeID RefereeID  `json:"referee_id,omitempty"`
	Rules     Rules      `json:"rules"`
	Kicks     []Kick     `json:"kicks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	prices PriceLookup
}

// NewShootout creates a shootout between two distinct, non-empty teams.
// teamA kicks first.
func NewShootout(id ShootoutID, teamA, teamB string, rules Rules) (*Shootout, error) {
	if teamA == "" || teamB == "" || teamA == teamB {
		return nil, ErrInvalidTeams
	}
	return &Shootout{
		ID:    id,
		TeamA: teamA,
		TeamB: teamB,
		Rules: rules.withDefaults(),
		Kicks: []Kick{},
	}, nil
}

// SetPriceLookup injects the price lookup used by the extended score format
func (s *Shootout) SetPriceLookup(prices PriceLookup) {
	s.prices = prices
}

// Turn returns the number of kicks taken so far
func (s *Shootout) Turn() int {
	return len(s.Kicks)
}

// DueSide returns the side whose turn it is
func (s *Shootout) DueSide() Side {
	return Side(len(s.Kicks) % 2)
}

// DueTeam returns the name of the team whose turn it is
func (s *Shootout) DueTeam() string {
	return s.TeamName(s.DueSide())
}

// TeamName returns the team name for a side
func (s *Shootout) TeamName(side Side) string {
	if side == SideB {
		return s.TeamB
	}
	return s.TeamA
}

// Round returns the 1-based round currently in progress
func (s *Shootout) Round() int {
	return len(s.Kicks)/2 + 1
}

// KicksTaken returns how many kicks a side has taken
func (s *Shootout) KicksTaken(side Side) int {
	if side == SideA {
		return (len(s.Kicks) + 1) / 2
	}
	return len(s.Kicks) / 2
}

// Goals returns the successful kick counts for team A and team B
func (s *Shootout) Goals() (a, b int) {
	for _, k := range s.Kicks {
		if !k.Success {
			continue
		}
		if k.Side == SideA {
			a++
		} else {
			b++
		}
	}
	return a, b
}

// Kick records an implicit-turn kick for the team that is due
func (s *Shootout) Kick(success bool) error {
	if s.Finished() {
		return ErrKickAfterFinished
	}
	s.record(s.DueSide(), "", success)
	return nil
}

// KickBy records a kick by a named player, asserting which team they kick for.
// It returns the player's full history after recording.
func (s *Shootout) KickBy(player, team string, success bool) ([]bool, error) {
	if s.Finished() {
		return nil, ErrKickAfterFinished
	}
	if player == "" {
		return nil, ErrInvalidPlayer
	}
	if team != s.DueTeam() {
		return nil, ErrKickOnWrongTurn
	}
	s.record(s.DueSide(), player, success)
	return s.KicksHistoryForPlayer(player), nil
}

func (s *Shootout) record(side Side, player string, success bool) {
	s.Kicks = append(s.Kicks, Kick{Side: side, Player: player, Success: success})
}

// KicksHistoryForPlayer returns the outcomes of a player's explicit kicks, oldest first
func (s *Shootout) KicksHistoryForPlayer(player string) []bool {
	history := []bool{}
	if player == "" {
		return history
	}
	for _, k := range s.Kicks {
		if k.Player == player {
			history = append(history, k.Success)
		}
	}
	return history
}

// MissedKicksBy returns explicit missed kicks attributed to a team name or player name
func (s *Shootout) MissedKicksBy(name string) []Kick {
	var missed []Kick
	for _, k := range s.Kicks {
		if k.Success || k.Player == "" {
			continue
		}
		if s.TeamName(k.Side) == name || k.Player == name {
			missed = append(missed, k)
		}
	}
	return missed
}

// Finished reports whether the shootout is decided
func (s *Shootout) Finished() bool {
	rounds := s.Rules.withDefaults().RegulationRounds
	n := len(s.Kicks)
	a, b := s.Goals()

	if n <= 2*rounds {
		remainingA := rounds - s.KicksTaken(SideA)
		remainingB := rounds - s.KicksTaken(SideB)
		return a > b+remainingB || b > a+remainingA
	}

	// Sudden death: regulation ended level, so any difference after a
	// completed round means that round decided it.
	return n%2 == 0 && a != b
}

// Winner returns the winning team name, or empty if not finished
func (s *Shootout) Winner() string {
	if !s.Finished() {
		return ""
	}
	a, b := s.Goals()
	if a > b {
		return s.TeamA
	}
	return s.TeamB
}

// ExtendedScore reports whether Score uses the priced format
func (s *Shootout) ExtendedScore() bool {
	after := s.Rules.withDefaults().ExtendedScoreAfterKicks
	return after > 0 && len(s.Kicks) > after
}

// Score returns "A-B", or the priced format once the series has run long
func (s *Shootout) Score() string {
	a, b := s.Goals()
	if !s.ExtendedScore() {
		return fmt.Sprintf("%d-%d", a, b)
	}
	return fmt.Sprintf("%s [%d] (%d)-(%d) [%d] %s",
		s.TeamA, s.price(s.TeamA), a, b, s.price(s.TeamB), s.TeamB)
}

func (s *Shootout) price(name string) int64 {
	if s.prices == nil {
		return 0
	}
	return s.prices.MissedPlayersTotalPrice(name)
}

// ShootoutSummary is a read-only snapshot of a shootout
type ShootoutSummary struct {
	ID       ShootoutID
	TeamA    string
	TeamB    string
	GoalsA   int
	GoalsB   int
	Kicks    []Kick
	Round    int
	DueTeam  string // Empty once finished
	Finished bool
	Winner   string
	Score    string
}

// Summary snapshots the derived state of the shootout
func (s *Shootout) Summary() ShootoutSummary {
	a, b := s.Goals()
	finished := s.Finished()
	due := ""
	if !finished {
		due = s.DueTeam()
	}
	kicks := make([]Kick, len(s.Kicks))
	copy(kicks, s.Kicks)
	return ShootoutSummary{
		ID:       s.ID,
		TeamA:    s.TeamA,
		TeamB:    s.TeamB,
		GoalsA:   a,
		GoalsB:   b,
		Kicks:    kicks,
		Round:    s.Round(),
		DueTeam:  due,
		Finished: finished,
		Winner:   s.Winner(),
		Score:    s.Score(),
	}
}
