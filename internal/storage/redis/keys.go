package redis

import (
	"fmt"

	"github.com/mcoot/penalties-go/internal/model"
)

// Key prefix for all shootout-related data
const keyPrefix = "penalties"

// refereeKey returns the Redis key for a Referee
func refereeKey(id model.RefereeID) string {
	return fmt.Sprintf("%s:referee:%s", keyPrefix, id)
}

// registeredRefereeKey returns the Redis key for a RegisteredReferee
func registeredRefereeKey(refereeID model.RefereeID) string {
	return fmt.Sprintf("%s:registered_referee:%s", keyPrefix, refereeID)
}

// usernameIndexKey returns the Redis key for the username -> referee_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// shootoutKey returns the Redis key for a Shootout
func shootoutKey(id model.ShootoutID) string {
	return fmt.Sprintf("%s:shootout:%s", keyPrefix, id)
}

// valuationsKey returns the Redis key for the HASH of player valuations
func valuationsKey() string {
	return fmt.Sprintf("%s:valuations", keyPrefix)
}
