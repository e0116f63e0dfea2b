package bot

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// handleSlashCommand processes slash commands delivered over Socket
// Mode. The socket request is acked by the dispatcher before this runs.
func (b *Bot) handleSlashCommand(ctx context.Context, cmd slack.SlashCommand) {
	switch cmd.Command {
	case "/message-count":
		b.reportMessageCount(ctx, cmd.UserID, cmd.UserName, cmd.ChannelID)
	default:
		b.logger.Debug("unhandled slash command", "command", cmd.Command)
	}
}

// reportMessageCount posts the requester's message count to the channel
// the command was issued from. Users who never sent a message report
// zero. Missing payload fields drop the command.
func (b *Bot) reportMessageCount(ctx context.Context, userID, userName, channelID string) {
	if userID == "" || channelID == "" {
		b.logger.Debug("message-count command with missing fields ignored",
			"user", userID, "channel", channelID)
		return
	}

	count := b.counts.Count(userID)
	text := fmt.Sprintf("Command received. Number of message sent by %s: %d", userName, count)
	_, _, err := b.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		b.logger.Error("failed to post message count",
			"user", userID, "channel", channelID, "error", err)
		return
	}
	b.logger.Info("message count reported", "user", userID, "channel", channelID, "count", count)
}
