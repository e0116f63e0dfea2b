package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/slack-go/slack/slackevents"
)

func reactionEvent(user, itemChannel string) *slackevents.ReactionAddedEvent {
	return &slackevents.ReactionAddedEvent{
		User:     user,
		Reaction: "thumbsup",
		Item: slackevents.Item{
			Type:      "message",
			Channel:   itemChannel,
			Timestamp: "100.1",
		},
	}
}

func TestHandleReaction_WithPriorStart(t *testing.T) {
	api := newFakeSlack()
	b := newTestBot(api)

	b.handleMessageEvent(context.Background(), messageEvent("U1", "C1", "Start", "100.1"))
	session, _ := b.registry.Find("@U1", "U1")
	oldTS := session.Timestamp

	b.handleReactionAdded(context.Background(), reactionEvent("U1", "D-U1"))

	if !session.TaskDone(1) {
		t.Error("task 1 should be complete after reaction")
	}
	if session.TaskDone(2) || session.TaskDone(3) {
		t.Error("tasks 2 and 3 should be untouched")
	}
	if session.Channel != "D-U1" {
		t.Errorf("session channel = %q, want D-U1", session.Channel)
	}

	if len(api.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(api.updates))
	}
	update := api.updates[0]
	if update.Channel != "D-U1" {
		t.Errorf("update channel = %q, want D-U1", update.Channel)
	}
	if update.Timestamp != oldTS {
		t.Errorf("update targeted ts %q, want stored handle %q", update.Timestamp, oldTS)
	}
	blocks := update.Values.Get("blocks")
	if got := strings.Count(blocks, ":white_check_mark:"); got != 1 {
		t.Errorf("done glyphs in updated message = %d, want 1", got)
	}

	if session.Timestamp == oldTS || session.Timestamp == "" {
		t.Errorf("session timestamp = %q, want new handle from update", session.Timestamp)
	}
}

func TestHandleReaction_WithoutPriorStart(t *testing.T) {
	api := newFakeSlack()
	b := newTestBot(api)

	b.handleReactionAdded(context.Background(), reactionEvent("U3", "D-U3"))

	if api.postCount() != 0 || len(api.updates) != 0 {
		t.Errorf("outbound calls = %d posts / %d updates, want none",
			api.postCount(), len(api.updates))
	}
	if _, ok := b.registry.Find("@U3", "U3"); ok {
		t.Error("reaction must not create a session")
	}
}

func TestHandleReaction_MissingUser(t *testing.T) {
	api := newFakeSlack()
	b := newTestBot(api)

	b.handleReactionAdded(context.Background(), reactionEvent("", "D-U1"))

	if api.postCount() != 0 || len(api.updates) != 0 {
		t.Error("reaction with no user should be a no-op")
	}
}

func TestHandleReaction_NoStoredHandle(t *testing.T) {
	api := newFakeSlack()
	b := newTestBot(api)

	// Session exists but the welcome send never succeeded, so there is
	// no message to edit.
	b.registry.GetOrCreate("@U1", "U1")

	b.handleReactionAdded(context.Background(), reactionEvent("U1", "D-U1"))

	if len(api.updates) != 0 {
		t.Errorf("updates = %d, want 0 without a stored handle", len(api.updates))
	}
}

func TestHandleReaction_UpdateFailureKeepsHandle(t *testing.T) {
	api := newFakeSlack()
	b := newTestBot(api)

	b.handleMessageEvent(context.Background(), messageEvent("U1", "C1", "Start", "100.1"))
	session, _ := b.registry.Find("@U1", "U1")
	oldTS := session.Timestamp

	api.updateErr = context.DeadlineExceeded
	b.handleReactionAdded(context.Background(), reactionEvent("U1", "D-U1"))

	if session.Timestamp != oldTS {
		t.Errorf("failed update replaced the handle: %q, want %q", session.Timestamp, oldTS)
	}
}
