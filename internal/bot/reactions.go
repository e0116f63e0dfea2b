package bot

import (
	"context"

	"slaccbot/internal/onboarding"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// handleReactionAdded reconciles a reaction with the reacting user's
// onboarding checklist. Sessions are keyed by the user's DM channel; a
// reaction from a user who never sent "start" resolves to nothing and
// is silently ignored.
func (b *Bot) handleReactionAdded(ctx context.Context, ev *slackevents.ReactionAddedEvent) {
	if ev.User == "" || ev.User == b.botUserID {
		return
	}

	session, ok := b.registry.Find(onboarding.DMChannel(ev.User), ev.User)
	if !ok {
		b.logger.Debug("reaction without onboarding session ignored", "user", ev.User)
		return
	}

	session.CompleteTask(1)
	// The reaction carries the real conversation ID of the DM; the
	// update call needs it rather than the @user routing key.
	if ev.Item.Channel != "" {
		session.Channel = ev.Item.Channel
	}

	if session.Timestamp == "" {
		b.logger.Warn("onboarding session has no message to update", "user", ev.User)
		return
	}

	_, ts, _, err := b.api.UpdateMessageContext(ctx, session.Channel, session.Timestamp,
		slack.MsgOptionBlocks(session.Render()...))
	if err != nil {
		b.logger.Error("failed to update welcome message",
			"user", ev.User, "channel", session.Channel, "error", err)
		return
	}
	session.Timestamp = ts
	b.logger.Info("onboarding task completed", "user", ev.User, "task", 1, "ts", ts)
}
