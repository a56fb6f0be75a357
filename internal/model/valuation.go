package model

import "time"

// Valuation is the market price of a player, used to cost missed kicks
type Valuation struct {
	Player    string    `json:"player"`
	Price     int64     `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}
