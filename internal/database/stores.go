package database

import "samuro/internal/ladder"

// NewRepositories bundles the SQL-backed stores for the ladder engine.
func NewRepositories(db Database) ladder.Repositories {
	return ladder.Repositories{
		Players:     NewPlayerStore(db),
		Sessions:    NewSessionStore(db),
		Predictions: NewPredictionStore(db),
		MatchLog:    NewMatchLogStore(db),
		ChangeLog:   NewChangeLogStore(db),
	}
}
