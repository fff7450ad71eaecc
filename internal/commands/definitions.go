package commands

import "github.com/bwmarrin/discordgo"

var minMMR float64 = 2200.0

var matchTypeChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "5x5 (balanced)", Value: "5x5"},
	{Name: "5x5 manual", Value: "5x5 manual"},
	{Name: "unranked", Value: "unranked"},
	{Name: "1x4", Value: "1x4"},
	{Name: "duel", Value: "duel"},
}

var sideChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "blue", Value: "blue"},
	{Name: "red", Value: "red"},
}

var SlashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "help",
		Description: "Show all commands and features",
	},
	{
		Name:        "event",
		Description: "Manage the match session of this channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "create",
				Description: "Create a match and split the teams",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "type",
						Description: "Match type",
						Required:    true,
						Choices:     matchTypeChoices,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "players",
						Description: "The roster: mentions or ids, in order for manual types",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "map",
						Description: "Battleground name",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "delta_mmr",
						Description: "Base MMR change per player, config default when omitted",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "win_points",
						Description: "Season points for winners, config default when omitted",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "lose_points",
						Description: "Season points for losers, config default when omitted",
						Required:    false,
					},
				},
			},
			{
				Name:        "end",
				Description: "Conclude the match and apply the results",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "winner",
						Description: "The winning side",
						Required:    true,
						Choices:     sideChoices,
					},
				},
			},
			{
				Name:        "remove",
				Description: "Cancel the match without touching any rating",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "view",
				Description: "Show the teams of the current match",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "captains",
				Description: "Pick two random captains from a roster",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "players",
						Description: "The roster: mentions or ids",
						Required:    true,
					},
				},
			},
		},
	},
	{
		Name:        "profile",
		Description: "Manage ladder profiles",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "add",
				Description: "Register a player on the ladder",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The player to register",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "btag",
						Description: "Battle tag (Name#1234)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "mmr",
						Description: "Initial MMR, looked up from heroesprofile.com when omitted",
						Required:    false,
						MinValue:    &minMMR,
					},
				},
			},
			{
				Name:        "show",
				Description: "Show a player's profile",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The player to show, yourself when omitted",
						Required:    false,
					},
				},
			},
			{
				Name:        "change",
				Description: "Change a player's MMR or block status",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The player to change",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "mmr",
						Description: "New MMR",
						Required:    false,
						MinValue:    &minMMR,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "blocked",
						Description: "Block or unblock the player",
						Required:    false,
					},
				},
			},
			{
				Name:        "history",
				Description: "Show a player's recent matches",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The player to show, yourself when omitted",
						Required:    false,
					},
				},
			},
		},
	},
	{
		Name:        "vote",
		Description: "Predict the winner of the current match",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "side",
				Description: "The side you expect to win",
				Required:    true,
				Choices:     sideChoices,
			},
		},
	},
	{
		Name:        "leaderboard",
		Description: "Show the season's top players",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "league",
				Description: "Restrict to one league",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Bronze", Value: "Bronze"},
					{Name: "Silver", Value: "Silver"},
					{Name: "Gold", Value: "Gold"},
					{Name: "Platinum", Value: "Platinum"},
					{Name: "Diamond", Value: "Diamond"},
					{Name: "Master", Value: "Master"},
					{Name: "Grandmaster", Value: "Grandmaster"},
				},
			},
		},
	},
}
