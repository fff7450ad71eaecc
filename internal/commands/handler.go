package commands

import (
	"regexp"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"samuro/internal/ladder"
	"samuro/pkg/config"
	"samuro/pkg/utils"
)

// Ladder is the engine behind every command, set by Setup at startup.
var Ladder *ladder.Manager

// Setup binds the command layer to the ladder engine.
func Setup(m *ladder.Manager) {
	Ladder = m
}

// Helper to send interaction response easily
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func SlashHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	// Check if channel is allowed
	if !config.Bot.IsChannelAllowed(i.ChannelID) {
		respondEphemeral(s, i, utils.ErrorEmbed("This bot can only be used in designated channels."))
		return
	}

	switch i.ApplicationCommandData().Name {
	case "help":
		handleSlashHelp(s, i)
	case "event":
		handleSlashEvent(s, i)
	case "profile":
		handleSlashProfile(s, i)
	case "vote":
		handleSlashVote(s, i)
	case "leaderboard":
		handleSlashLeaderboard(s, i)
	}
}

func handleSlashHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	description := "**Matches**\n" +
		"`/event create` split teams and open a match in this channel\n" +
		"`/event end` conclude the match and apply ratings\n" +
		"`/event remove` cancel the match\n" +
		"`/event view` show the current teams\n" +
		"`/event captains` pick two random captains\n\n" +
		"**Profiles**\n" +
		"`/profile add` register a player\n" +
		"`/profile show` show rating, league and stats\n" +
		"`/profile change` set MMR or block a player\n" +
		"`/profile history` recent matches\n\n" +
		"**Community**\n" +
		"`/vote` predict the winner of the current match\n" +
		"`/leaderboard` season top players"
	respondEmbed(s, i, utils.InfoEmbed("Commands", description))
}

var idPattern = regexp.MustCompile(`\d{15,20}`)

// parseRoster extracts player ids from a string of mentions or raw ids,
// keeping their order.
func parseRoster(raw string) []int64 {
	matches := idPattern.FindAllString(raw, -1)
	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func userID(i *discordgo.InteractionCreate) int64 {
	id, _ := strconv.ParseInt(i.Member.User.ID, 10, 64)
	return id
}

func mention(id int64) string {
	return "<@" + strconv.FormatInt(id, 10) + ">"
}
