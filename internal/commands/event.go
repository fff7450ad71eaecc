package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"

	"samuro/internal/ladder"
	"samuro/internal/webhook"
	"samuro/pkg/config"
	"samuro/pkg/utils"
)

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func handleSlashEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "create":
		handleEventCreate(s, i, sub)
	case "end":
		handleEventEnd(s, i, sub)
	case "remove":
		handleEventRemove(s, i)
	case "view":
		handleEventView(s, i)
	case "captains":
		handleEventCaptains(s, i, sub)
	}
}

func handleEventCreate(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)

	matchType := ladder.MatchType(opts["type"].StringValue())
	playerIDs := parseRoster(opts["players"].StringValue())

	mapName := ""
	if opt, ok := opts["map"]; ok {
		mapName = opt.StringValue()
		if !config.Ladder.HasMap(mapName) {
			respondEmbed(s, i, utils.ErrorEmbed(fmt.Sprintf("**%s** is not in the map pool.", mapName)))
			return
		}
	}

	deltaMMR, winPoints, losePoints := config.Ladder.Params()
	if opt, ok := opts["delta_mmr"]; ok {
		deltaMMR = int(opt.IntValue())
	}
	if opt, ok := opts["win_points"]; ok {
		winPoints = int(opt.IntValue())
	}
	if opt, ok := opts["lose_points"]; ok {
		losePoints = int(opt.IntValue())
	}

	sess, err := Ladder.CreateSession(context.Background(), i.ChannelID, matchType, playerIDs,
		mapName, ladder.ScoringParams{DeltaMMR: deltaMMR, WinPoints: winPoints, LosePoints: losePoints})
	if err != nil {
		respondEmbed(s, i, eventErrorEmbed(err))
		return
	}

	respondEmbed(s, i, sessionEmbed(sess, "Match Created"))
}

func handleEventEnd(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)
	winner := ladder.Winner(opts["winner"].StringValue())

	sess, err := Ladder.ConcludeSession(context.Background(), i.ChannelID, winner)
	if err != nil {
		respondEmbed(s, i, eventErrorEmbed(err))
		return
	}

	embed := sessionEmbed(sess, "Match Concluded")
	if winner == ladder.WinnerBlue {
		embed.Color = utils.ColorTeamBlue
	} else {
		embed.Color = utils.ColorTeamRed
	}
	respondEmbed(s, i, embed)

	webhook.NotifyResult(sess)
}

func handleEventRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, err := Ladder.CancelSession(context.Background(), i.ChannelID)
	if err != nil {
		respondEmbed(s, i, eventErrorEmbed(err))
		return
	}
	respondEmbed(s, i, utils.SuccessEmbed("Match Cancelled", "The match was removed, no ratings were changed."))
}

func handleEventView(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sess, err := Ladder.GetActiveSession(context.Background(), i.ChannelID)
	if err != nil {
		respondEmbed(s, i, eventErrorEmbed(err))
		return
	}
	respondEmbed(s, i, sessionEmbed(sess, "Current Match"))
}

func handleEventCaptains(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)
	ids := parseRoster(opts["players"].StringValue())
	if len(ids) < 2 {
		respondEmbed(s, i, utils.ErrorEmbed("Need at least two players to pick captains."))
		return
	}

	first := rand.Intn(len(ids))
	second := rand.Intn(len(ids) - 1)
	if second >= first {
		second++
	}

	respondEmbed(s, i, utils.InfoEmbed("Captains",
		fmt.Sprintf("🔵 %s\n🔴 %s", mention(ids[first]), mention(ids[second]))))
}

func sessionEmbed(sess *ladder.MatchSession, title string) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = title
	embed.Color = utils.ColorBlue

	description := fmt.Sprintf("Type: **%s**", sess.Type)
	if sess.Map != "" {
		description += fmt.Sprintf("\nMap: **%s**", sess.Map)
	}
	if sess.Winner != "" {
		description += fmt.Sprintf("\nWinner: **%s**", sess.Winner)
	}
	embed.Description = description

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "🔵 Blue", Value: rosterList(sess.Blue), Inline: true},
		{Name: "🔴 Red", Value: rosterList(sess.Red), Inline: true},
	}
	return embed
}

func rosterList(ids []int64) string {
	lines := make([]string, len(ids))
	for n, id := range ids {
		lines[n] = mention(id)
	}
	return strings.Join(lines, "\n")
}

func eventErrorEmbed(err error) *discordgo.MessageEmbed {
	var blocked *ladder.PlayerBlockedError
	switch {
	case errors.Is(err, ladder.ErrSessionAlreadyActive):
		return utils.ErrorEmbed("This channel already has an active match. End or remove it first.")
	case errors.Is(err, ladder.ErrSessionNotFound):
		return utils.ErrorEmbed("There is no active match in this channel.")
	case errors.Is(err, ladder.ErrInvalidRosterSize):
		return utils.ErrorEmbed("Wrong number of players for this match type.")
	case errors.Is(err, ladder.ErrPlayerNotFound):
		return utils.ErrorEmbed("One of the players is not registered. Use `/profile add` first.")
	case errors.As(err, &blocked):
		return utils.ErrorEmbed(fmt.Sprintf("**%s** is blocked and cannot take part.", blocked.BattleTag))
	}
	return utils.ErrorEmbed("Something went wrong, try again.")
}
