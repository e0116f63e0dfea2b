// Package bot provides the Slaccbot Slack Socket Mode bot.
//
// The bot listens for workspace events and routes them to the stateful
// components: message events feed the per-user message counter, the
// moderation filter, and the onboarding registry; reaction events
// reconcile the onboarding checklist with in-place message edits; the
// /message-count command reports a user's message count. All state is
// in-memory and lost on process exit.
//
// The implementation is split across several files:
//   - bot.go — core struct, Socket Mode event dispatch
//   - messages.go — message event handling (count, start, moderation)
//   - reactions.go — reaction_added handling (checklist updates)
//   - commands.go — slash command handling (Socket Mode path)
//   - webhook.go — HTTP form-POST slash command fallback
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"slaccbot/internal/counter"
	"slaccbot/internal/moderation"
	"slaccbot/internal/onboarding"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

const greetingText = `Hello WERL. Type "Start" to start using Slaccbot.`

// SlackAPI is the subset of the Slack Web API the bot invokes.
// *slack.Client satisfies it.
type SlackAPI interface {
	AuthTest() (*slack.AuthTestResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
}

// Bot is the Slack Socket Mode bot that routes workspace events.
type Bot struct {
	api    SlackAPI
	socket *socketmode.Client
	logger *slog.Logger

	registry *onboarding.Registry
	counts   *counter.Counter
	filter   *moderation.Filter

	channel       string // startup greeting channel ("" = no greeting)
	signingSecret string // webhook signature verification ("" = disabled)
	botUserID     string // bot's own user ID (set on connect)

	connected atomic.Bool
}

// Config holds configuration for the bot.
type Config struct {
	BotToken      string
	AppToken      string
	SigningSecret string
	Channel       string // startup greeting channel, optional
	Logger        *slog.Logger
	Debug         bool
}

// New creates a Socket Mode bot wired to fresh in-memory state.
func New(cfg Config) *Bot {
	api := slack.New(
		cfg.BotToken,
		slack.OptionAppLevelToken(cfg.AppToken),
	)

	socket := socketmode.New(
		api,
		socketmode.OptionDebug(cfg.Debug),
	)

	return &Bot{
		api:           api,
		socket:        socket,
		logger:        cfg.Logger,
		registry:      onboarding.NewRegistry(),
		counts:        counter.New(),
		filter:        moderation.New(),
		channel:       cfg.Channel,
		signingSecret: cfg.SigningSecret,
	}
}

// IsConnected returns the bot's Socket Mode connection status.
func (b *Bot) IsConnected() bool {
	return b.connected.Load()
}

// Run authenticates, posts the startup greeting, and drives the Socket
// Mode event loop. Blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	auth, err := b.api.AuthTest()
	if err != nil {
		return fmt.Errorf("Slack auth test: %w", err)
	}
	b.botUserID = auth.UserID
	b.logger.Info("Slack bot authenticated", "user_id", b.botUserID, "team", auth.Team)

	b.postGreeting(ctx)

	go b.handleEvents(ctx)

	err = b.socket.RunContext(ctx)
	b.connected.Store(false)
	return err
}

// postGreeting announces the bot in the configured channel so members
// know how to start onboarding.
func (b *Bot) postGreeting(ctx context.Context) {
	if b.channel == "" {
		return
	}
	_, _, err := b.api.PostMessageContext(ctx, b.channel,
		slack.MsgOptionText(greetingText, false))
	if err != nil {
		b.logger.Error("failed to post startup greeting", "channel", b.channel, "error", err)
		return
	}
	b.logger.Info("posted startup greeting", "channel", b.channel)
}

// handleEvents processes Socket Mode events. Events are handled one at
// a time, so session mutation needs no extra locking.
func (b *Bot) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-b.socket.Events:
			if !ok {
				return
			}
			b.handleEvent(ctx, evt)
		}
	}
}

func (b *Bot) handleEvent(ctx context.Context, evt socketmode.Event) {
	b.logger.Debug("socket mode event received", "type", string(evt.Type))

	switch evt.Type {
	case socketmode.EventTypeConnecting:
		b.logger.Info("Slack Socket Mode connecting")

	case socketmode.EventTypeConnected:
		b.connected.Store(true)
		b.logger.Info("Slack Socket Mode connected")

	case socketmode.EventTypeConnectionError:
		b.connected.Store(false)
		b.logger.Error("Slack Socket Mode connection error")

	case socketmode.EventTypeEventsAPI:
		eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			return
		}
		b.socket.Ack(*evt.Request)
		b.handleEventsAPI(ctx, eventsAPIEvent)

	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok {
			return
		}
		b.socket.Ack(*evt.Request)
		b.handleSlashCommand(ctx, cmd)
	}
}

// handleEventsAPI processes Events API events received via Socket Mode.
func (b *Bot) handleEventsAPI(ctx context.Context, event slackevents.EventsAPIEvent) {
	switch event.Type {
	case slackevents.CallbackEvent:
		switch ev := event.InnerEvent.Data.(type) {
		case *slackevents.MessageEvent:
			b.handleMessageEvent(ctx, ev)
		case *slackevents.ReactionAddedEvent:
			b.handleReactionAdded(ctx, ev)
		}
	}
}
