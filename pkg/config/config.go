package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// LadderConfig holds the scoring defaults applied when a session is
// created without explicit parameters.
type LadderConfig struct {
	Season          string   `json:"season"`
	DefaultDeltaMMR int      `json:"default_delta_mmr"`
	WinPoints       int      `json:"win_points"`
	LosePoints      int      `json:"lose_points"`
	MapPool         []string `json:"map_pool"`
}

type DatabaseConfig struct {
	Type string `json:"type"` // "sqlite" or "postgres"
}

type GeneralConfig struct {
	BotName         string         `json:"bot_name"`
	EnableAPI       bool           `json:"enable_api"`
	ApiPort         string         `json:"api_port"`
	AllowedChannels []string       `json:"allowed_channels"`
	Database        DatabaseConfig `json:"database"`
}

// Env holds the secrets and overrides read from the environment.
type Env struct {
	DiscordToken  string `envconfig:"DISCORD_TOKEN"`
	HeroesProfile bool   `envconfig:"HEROES_PROFILE" default:"true"`
	WebhookURL    string `envconfig:"RESULT_WEBHOOK_URL"`
}

var (
	Ladder     LadderConfig
	Bot        GeneralConfig
	Secrets    Env
	DBType     string
	ConnString string
)

// Load reads ladder.json, config.json and the environment. Call it once
// at startup, after godotenv has populated the process environment.
func Load() {
	loadJSON("ladder.json", &Ladder)
	loadJSON("config.json", &Bot)

	if err := envconfig.Process("", &Secrets); err != nil {
		log.Fatal().Err(err).Msg("error reading environment")
	}

	setupDatabaseConfig()
}

func setupDatabaseConfig() {
	// DB_TYPE from .env overrides config.json.
	DBType = os.Getenv("DB_TYPE")
	if DBType == "" {
		DBType = Bot.Database.Type
	}
	if DBType == "" {
		DBType = "sqlite"
	}

	switch DBType {
	case "postgres":
		ConnString = buildPostgresConnectionString()
	case "sqlite":
		fallthrough
	default:
		ConnString = os.Getenv("SQLITE_PATH")
		if ConnString == "" {
			ConnString = "./samuro.db"
		}
		DBType = "sqlite"
	}
}

func buildPostgresConnectionString() string {
	// A full DATABASE_URL wins; pgx handles pooler URLs fine.
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		log.Info().Msg("using DATABASE_URL from environment")
		return dbURL
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		log.Fatal().Msg("DB_HOST is required for PostgreSQL, set it in .env or use DATABASE_URL")
	}

	portStr := os.Getenv("DB_PORT")
	port := 5432
	if portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		log.Fatal().Msg("DB_USER is required for PostgreSQL, set it in .env")
	}

	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		log.Fatal().Msg("DB_PASSWORD is required for PostgreSQL, set it in .env")
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "postgres"
	}

	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "require"
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func loadJSON(filename string, target interface{}) {
	file, err := os.ReadFile(filename)
	if err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("error reading config file")
	}

	if err := json.Unmarshal(file, target); err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("error parsing config file")
	}
}

// IsChannelAllowed reports whether commands may run in the channel. An
// empty list allows every channel.
func (c *GeneralConfig) IsChannelAllowed(channelID string) bool {
	if len(c.AllowedChannels) == 0 {
		return true
	}
	for _, id := range c.AllowedChannels {
		if id == channelID {
			return true
		}
	}
	return false
}

// Params returns the configured scoring defaults.
func (l *LadderConfig) Params() (deltaMMR, winPoints, losePoints int) {
	deltaMMR = l.DefaultDeltaMMR
	if deltaMMR == 0 {
		deltaMMR = 4
	}
	winPoints = l.WinPoints
	losePoints = l.LosePoints
	return deltaMMR, winPoints, losePoints
}

// HasMap reports whether a map name belongs to the configured pool. An
// empty pool accepts any name.
func (l *LadderConfig) HasMap(name string) bool {
	if len(l.MapPool) == 0 {
		return true
	}
	for _, m := range l.MapPool {
		if m == name {
			return true
		}
	}
	return false
}
