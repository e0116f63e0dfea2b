package bot

import (
	"context"
	"strings"

	"slaccbot/internal/onboarding"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

const usageText = `Welcome to Cheesecake Slaccbot. Type "Start" to start using the service`

const warningText = "Bad Word has been detected!"

// handleMessageEvent routes an inbound channel message. The bot's own
// messages, messages with no author, and message subtypes (edits,
// deletes, bot posts) are ignored. Everything else is counted, then
// answered exactly one way: "start" kicks off onboarding, a flagged
// message gets a threaded moderation warning, anything else gets the
// generic usage reply.
func (b *Bot) handleMessageEvent(ctx context.Context, ev *slackevents.MessageEvent) {
	if ev.User == "" || ev.User == b.botUserID || ev.SubType != "" {
		return
	}

	count := b.counts.Record(ev.User)
	b.logger.Debug("message recorded", "user", ev.User, "channel", ev.Channel, "count", count)

	switch {
	case strings.EqualFold(strings.TrimSpace(ev.Text), "start"):
		b.startOnboarding(ctx, ev.User)
	case b.filter.Match(ev.Text):
		b.warnBadWord(ctx, ev.Channel, ev.TimeStamp)
	default:
		b.sendUsageHint(ctx, ev.Channel)
	}
}

// startOnboarding creates the user's onboarding session and sends the
// welcome checklist to their DM with the bot. A repeated "start" finds
// the existing session and sends nothing.
func (b *Bot) startOnboarding(ctx context.Context, userID string) {
	session, created := b.registry.GetOrCreate(onboarding.DMChannel(userID), userID)
	if !created {
		b.logger.Debug("duplicate start ignored", "user", userID)
		return
	}

	_, ts, err := b.api.PostMessageContext(ctx, session.Channel,
		slack.MsgOptionBlocks(session.Render()...))
	if err != nil {
		b.logger.Error("failed to send welcome message", "user", userID, "error", err)
		return
	}
	session.Timestamp = ts
	b.logger.Info("onboarding started", "user", userID, "ts", ts)
}

// warnBadWord posts the moderation warning as a threaded reply under
// the offending message.
func (b *Bot) warnBadWord(ctx context.Context, channelID, messageTS string) {
	_, _, err := b.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(warningText, false),
		slack.MsgOptionTS(messageTS))
	if err != nil {
		b.logger.Error("failed to post moderation warning", "channel", channelID, "error", err)
		return
	}
	b.logger.Info("moderation warning posted", "channel", channelID, "ts", messageTS)
}

// sendUsageHint replies with the generic instruction for messages the
// bot has no specific handling for.
func (b *Bot) sendUsageHint(ctx context.Context, channelID string) {
	_, _, err := b.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(usageText, false))
	if err != nil {
		b.logger.Error("failed to post usage hint", "channel", channelID, "error", err)
	}
}
