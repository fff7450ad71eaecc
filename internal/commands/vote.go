package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"samuro/internal/ladder"
	"samuro/pkg/utils"
)

func handleSlashVote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i.ApplicationCommandData().Options)
	side := ladder.Winner(opts["side"].StringValue())

	ctx := context.Background()
	sess, err := Ladder.GetActiveSession(ctx, i.ChannelID)
	if err != nil {
		respondEphemeral(s, i, utils.ErrorEmbed("There is no active match in this channel."))
		return
	}

	if err := Ladder.Tally().Record(ctx, userID(i), sess.ID, side); err != nil {
		if errors.Is(err, ladder.ErrSessionNotFound) {
			respondEphemeral(s, i, utils.ErrorEmbed("The match is no longer open for predictions."))
			return
		}
		respondEphemeral(s, i, utils.ErrorEmbed("Could not record your prediction, try again."))
		return
	}

	emoji := "🔵"
	if side == ladder.WinnerRed {
		emoji = "🔴"
	}
	respondEphemeral(s, i, utils.SuccessEmbed("Prediction Recorded",
		fmt.Sprintf("You predicted %s **%s** wins match #%d.", emoji, side, sess.ID)))
}

func handleSlashLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i.ApplicationCommandData().Options)

	league := ladder.League("")
	if opt, ok := opts["league"]; ok {
		league = ladder.League(opt.StringValue())
	}

	players, err := Ladder.Leaderboard(context.Background(), league, 10)
	if err != nil {
		respondEmbed(s, i, utils.ErrorEmbed("Could not retrieve the leaderboard."))
		return
	}
	if len(players) == 0 {
		respondEmbed(s, i, utils.InfoEmbed("Leaderboard", "No players found."))
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	description := ""
	for n, p := range players {
		rank := fmt.Sprintf("**%d.**", n+1)
		if n < len(medals) {
			rank = medals[n]
		}
		description += fmt.Sprintf("%s %s — %d pts, %d MMR (%dW/%dL)\n",
			rank, p.BattleTag, p.Stats.Points, p.MMR, p.Stats.Win, p.Stats.Lose)
	}

	title := "Leaderboard"
	if league != "" {
		title += ": " + string(league)
	}
	respondEmbed(s, i, utils.GoldEmbed(title, description))
}
