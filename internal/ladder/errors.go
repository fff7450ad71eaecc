package ladder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRosterSize is returned when the roster length does not
	// match the match type's required size.
	ErrInvalidRosterSize = errors.New("roster size does not match match type")

	// ErrSessionAlreadyActive is returned by Create when the room already
	// has an active session.
	ErrSessionAlreadyActive = errors.New("room already has an active session")

	// ErrSessionNotFound is returned when no matching session exists.
	ErrSessionNotFound = errors.New("no active session found")

	// ErrPlayerNotFound is returned on a lookup miss for a required player.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrPlayerExists is returned when registering an already registered
	// player.
	ErrPlayerExists = errors.New("player already registered")

	// ErrNoStormRating is returned by a RatingLookup when the external
	// profile has no usable rating.
	ErrNoStormRating = errors.New("no storm league rating found")
)

// PlayerBlockedError names the blocked player that invalidated a roster.
type PlayerBlockedError struct {
	PlayerID  int64
	BattleTag string
}

func (e *PlayerBlockedError) Error() string {
	return fmt.Sprintf("player %s is blocked and cannot take part", e.BattleTag)
}
