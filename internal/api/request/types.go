package request

// RegisterRequest is the request body for registering a referee
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,max=64"`
	Password    string `json:"password" validate:"required,min=8,max=72"` // bcrypt ignores bytes past 72
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateShootoutRequest is the request body for starting a shootout
type CreateShootoutRequest struct {
	TeamA                   string `json:"team_a" validate:"required,max=100"`
	TeamB                   string `json:"team_b" validate:"required,max=100,nefield=TeamA"`
	RegulationRounds        int    `json:"regulation_rounds,omitempty" validate:"omitempty,min=1,max=20"`
	ExtendedScoreAfterKicks int    `json:"extended_score_after_kicks,omitempty" validate:"omitempty,min=-1"`
}

// KickRequest is the request body for recording a kick.
// Player and Team are given together for an explicit kick, or both omitted.
type KickRequest struct {
	Player  string `json:"player,omitempty" validate:"required_with=Team,max=100"`
	Team    string `json:"team,omitempty" validate:"required_with=Player,max=100"`
	Success *bool  `json:"success" validate:"required"`
}

// SetValuationRequest is the request body for pricing a player
type SetValuationRequest struct {
	Price *int64 `json:"price" validate:"required,min=0"`
}
