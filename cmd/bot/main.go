package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"samuro/internal/api"
	"samuro/internal/commands"
	"samuro/internal/database"
	"samuro/internal/heroesprofile"
	"samuro/internal/ladder"
	"samuro/internal/logger"
	"samuro/pkg/config"
)

func main() {
	_ = godotenv.Load()

	logger.Setup()
	config.Load()

	token := config.Secrets.DiscordToken
	if token == "" {
		zlog.Fatal().Msg("DISCORD_TOKEN not found in environment variables")
	}

	if err := database.Initialize(); err != nil {
		zlog.Fatal().Err(err).Msg("database initialization failed")
	}
	defer database.DB.Close()

	// Wire the ladder engine
	var lookup ladder.RatingLookup
	if config.Secrets.HeroesProfile {
		lookup = heroesprofile.NewClient()
	}
	repos := database.NewRepositories(database.DB)
	engine := ladder.NewManager(repos, lookup, config.Ladder.Season, zlog.Logger)
	commands.Setup(engine)

	// Start API Server
	if config.Bot.EnableAPI {
		go api.NewServer(engine).Start()
	} else {
		zlog.Info().Msg("API is disabled in config.json")
	}

	// Create Discord Session
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		zlog.Fatal().Err(err).Msg("error creating Discord session")
	}

	// Register Handlers
	dg.AddHandler(commands.SlashHandler)

	// Identify Intent
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	// Open Websocket
	if err := dg.Open(); err != nil {
		zlog.Fatal().Err(err).Msg("error opening connection")
	}

	// Register Slash Commands
	zlog.Info().Msg("registering slash commands")
	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands.SlashCommands))
	for i, v := range commands.SlashCommands {
		cmd, err := dg.ApplicationCommandCreate(dg.State.User.ID, "", v)
		if err != nil {
			zlog.Fatal().Err(err).Str("command", v.Name).Msg("cannot create command")
		}
		registeredCommands[i] = cmd
	}

	zlog.Info().Str("season", config.Ladder.Season).Msg("bot is now running, press CTRL-C to exit")

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	// Optionally remove commands on exit to avoid clutter if dev
	// for _, v := range registeredCommands {
	// 	dg.ApplicationCommandDelete(dg.State.User.ID, "", v.ID)
	// }
	dg.Close()
}
