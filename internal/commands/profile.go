package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"samuro/internal/ladder"
	"samuro/pkg/utils"
)

func handleSlashProfile(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "add":
		handleProfileAdd(s, i, sub)
	case "show":
		handleProfileShow(s, i, sub)
	case "change":
		handleProfileChange(s, i, sub)
	case "history":
		handleProfileHistory(s, i, sub)
	}
}

func handleProfileAdd(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)

	user := opts["user"].UserValue(s)
	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		respondEmbed(s, i, utils.ErrorEmbed("Invalid user."))
		return
	}
	btag := opts["btag"].StringValue()

	mmr := 0
	if opt, ok := opts["mmr"]; ok {
		mmr = int(opt.IntValue())
	}

	p, err := Ladder.RegisterPlayer(context.Background(), id, btag, mmr)
	if err != nil {
		switch {
		case errors.Is(err, ladder.ErrPlayerExists):
			respondEmbed(s, i, utils.ErrorEmbed(fmt.Sprintf("**%s** is already registered.", user.Username)))
		case errors.Is(err, ladder.ErrNoStormRating):
			respondEmbed(s, i, utils.ErrorEmbed(
				fmt.Sprintf("No Storm League rating found for **%s**. Pass the MMR explicitly.", btag)))
		default:
			respondEmbed(s, i, utils.ErrorEmbed("Could not register the player, try again."))
		}
		return
	}

	respondEmbed(s, i, utils.SuccessEmbed("Player Registered",
		fmt.Sprintf("%s joined the ladder as **%s** with **%d MMR** (%s).",
			mention(p.ID), p.BattleTag, p.MMR, leagueLabel(p))))
}

func handleProfileShow(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)

	targetUser := i.Member.User
	if opt, ok := opts["user"]; ok {
		targetUser = opt.UserValue(s)
	}
	id, err := strconv.ParseInt(targetUser.ID, 10, 64)
	if err != nil {
		respondEmbed(s, i, utils.ErrorEmbed("Invalid user."))
		return
	}

	ctx := context.Background()
	p, err := Ladder.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, ladder.ErrPlayerNotFound) {
			respondEmbed(s, i, utils.ErrorEmbed(
				fmt.Sprintf("**%s** is not registered. Use `/profile add` first.", targetUser.Username)))
			return
		}
		respondEmbed(s, i, utils.ErrorEmbed("Could not load the profile."))
		return
	}

	games := p.Stats.Win + p.Stats.Lose
	winrate := 0.0
	if games > 0 {
		winrate = float64(p.Stats.Win) / float64(games) * 100
	}

	embed := utils.NewEmbed()
	embed.Title = "Profile: " + p.BattleTag
	embed.Color = utils.ColorGold
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "MMR", Value: strconv.Itoa(p.MMR), Inline: true},
		{Name: "League", Value: leagueLabel(p), Inline: true},
		{Name: "Points", Value: strconv.Itoa(p.Stats.Points), Inline: true},
		{Name: "Record", Value: fmt.Sprintf("%dW / %dL (%.0f%%)", p.Stats.Win, p.Stats.Lose, winrate), Inline: true},
		{Name: "Streak", Value: streakLabel(p.Stats.Winstreak), Inline: true},
		{Name: "Best Streak", Value: strconv.Itoa(p.Stats.MaxWinstreak), Inline: true},
	}

	correct, wrong, err := Ladder.Tally().StatsFor(ctx, id)
	if err == nil && correct+wrong > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Predictions", Value: fmt.Sprintf("%d right / %d wrong", correct, wrong), Inline: true,
		})
	}
	if p.Blocked {
		embed.Description = "🚫 Blocked from rosters"
	}
	respondEmbed(s, i, embed)
}

func handleProfileChange(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)

	user := opts["user"].UserValue(s)
	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		respondEmbed(s, i, utils.ErrorEmbed("Invalid user."))
		return
	}
	adminID := userID(i)

	mmrOpt, hasMMR := opts["mmr"]
	blockedOpt, hasBlocked := opts["blocked"]
	if !hasMMR && !hasBlocked {
		respondEmbed(s, i, utils.ErrorEmbed("Nothing to change, pass `mmr` or `blocked`."))
		return
	}

	ctx := context.Background()
	var p *ladder.Player
	if hasMMR {
		p, err = Ladder.SetRating(ctx, adminID, id, int(mmrOpt.IntValue()))
		if err != nil {
			respondEmbed(s, i, profileChangeError(err, user.Username))
			return
		}
	}
	if hasBlocked {
		p, err = Ladder.SetBlocked(ctx, adminID, id, blockedOpt.BoolValue())
		if err != nil {
			respondEmbed(s, i, profileChangeError(err, user.Username))
			return
		}
	}

	status := ""
	if p.Blocked {
		status = " (blocked)"
	}
	respondEmbed(s, i, utils.SuccessEmbed("Profile Updated",
		fmt.Sprintf("**%s** is now **%d MMR**, %s%s.", p.BattleTag, p.MMR, leagueLabel(p), status)))
}

func profileChangeError(err error, username string) *discordgo.MessageEmbed {
	if errors.Is(err, ladder.ErrPlayerNotFound) {
		return utils.ErrorEmbed(fmt.Sprintf("**%s** is not registered.", username))
	}
	return utils.ErrorEmbed("Could not update the profile, try again.")
}

func handleProfileHistory(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	opts := optionMap(sub.Options)

	targetUser := i.Member.User
	if opt, ok := opts["user"]; ok {
		targetUser = opt.UserValue(s)
	}
	id, err := strconv.ParseInt(targetUser.ID, 10, 64)
	if err != nil {
		respondEmbed(s, i, utils.ErrorEmbed("Invalid user."))
		return
	}

	entries, err := Ladder.History(context.Background(), id, 10)
	if err != nil {
		respondEmbed(s, i, utils.ErrorEmbed("Could not load the history."))
		return
	}
	if len(entries) == 0 {
		respondEmbed(s, i, utils.InfoEmbed("Match History", "No matches played yet."))
		return
	}

	description := ""
	for _, e := range entries {
		result := "❌"
		delta := -e.DeltaMMR
		if e.Won {
			result = "✅"
			delta = e.DeltaMMR
		}
		line := fmt.Sprintf("%s match #%d", result, e.SessionID)
		if e.Map != "" {
			line += " on " + e.Map
		}
		line += fmt.Sprintf(" (%+d MMR)\n", delta)
		description += line
	}
	respondEmbed(s, i, utils.InfoEmbed("Match History: "+targetUser.Username, description))
}

func leagueLabel(p *ladder.Player) string {
	if p.Division == 0 {
		return string(p.League)
	}
	return fmt.Sprintf("%s %d", p.League, p.Division)
}

func streakLabel(ws int) string {
	switch {
	case ws > 0:
		return fmt.Sprintf("🔥 %d wins", ws)
	case ws < 0:
		return fmt.Sprintf("%d losses", -ws)
	}
	return "none"
}
