package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"slaccbot/internal/counter"
	"slaccbot/internal/moderation"
	"slaccbot/internal/onboarding"

	"github.com/slack-go/slack"
)

// fakeSlack implements SlackAPI for testing, recording outbound calls.
type fakeSlack struct {
	mu     sync.Mutex
	userID string

	posts   []apiCall
	updates []apiCall

	postErr   error
	updateErr error
	nextTS    int
}

// apiCall captures one outbound Web API call with its applied message
// options. Timestamp is the target ts for updates and the assigned ts
// for posts.
type apiCall struct {
	Channel   string
	Timestamp string
	Values    url.Values
}

func newFakeSlack() *fakeSlack {
	return &fakeSlack{userID: "U-BOT"}
}

func (f *fakeSlack) AuthTest() (*slack.AuthTestResponse, error) {
	return &slack.AuthTestResponse{UserID: f.userID, Team: "testteam"}, nil
}

func (f *fakeSlack) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return "", "", f.postErr
	}
	_, values, err := slack.UnsafeApplyMsgOptions("xoxb-test", channelID, slack.APIURL, options...)
	if err != nil {
		return "", "", err
	}
	ts := f.assignTS()
	f.posts = append(f.posts, apiCall{Channel: channelID, Timestamp: ts, Values: values})
	return channelID, ts, nil
}

func (f *fakeSlack) UpdateMessageContext(_ context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return "", "", "", f.updateErr
	}
	_, values, err := slack.UnsafeApplyMsgOptions("xoxb-test", channelID, slack.APIURL, options...)
	if err != nil {
		return "", "", "", err
	}
	f.updates = append(f.updates, apiCall{Channel: channelID, Timestamp: timestamp, Values: values})
	return channelID, f.assignTS(), "", nil
}

// assignTS hands out monotonically increasing fake message timestamps.
// Caller must hold f.mu.
func (f *fakeSlack) assignTS() string {
	f.nextTS++
	return fmt.Sprintf("1700000000.%06d", f.nextTS)
}

func (f *fakeSlack) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts)
}

func (f *fakeSlack) lastPost() apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts[len(f.posts)-1]
}

// newTestBot builds a Bot around the fake API with fresh state and no
// socket, the way the handlers see it after Run has authenticated.
func newTestBot(api *fakeSlack) *Bot {
	return &Bot{
		api:       api,
		logger:    slog.Default(),
		registry:  onboarding.NewRegistry(),
		counts:    counter.New(),
		filter:    moderation.New(),
		botUserID: api.userID,
	}
}
