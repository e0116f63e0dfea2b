// Package onboarding tracks the per-user welcome checklist shown in a
// Slack message and renders it for in-place message edits.
package onboarding

import (
	"fmt"

	"github.com/slack-go/slack"
)

const welcomeText = "Welcome to the Cheesecake Slaccbot Testing channel! \n\n" +
	"In this channel, you can receive updates from our customer feedbacks.\n\n" +
	"*Get started by telling us your preferences for customer feedback updates!*"

const (
	glyphDone    = ":white_check_mark:"
	glyphPending = ":white_small_square:"
)

// Session is one user's onboarding checklist in one channel.
//
// Timestamp is the Slack handle of the last posted or edited checklist
// message. It is empty until the first send; callers must store the
// handle returned by every post/update back onto the session so later
// edits target the right message.
type Session struct {
	Channel   string
	User      string
	Timestamp string

	tasks [3]bool
}

// NewSession creates a session with no message sent and all tasks
// incomplete.
func NewSession(channel, user string) *Session {
	return &Session{Channel: channel, User: user}
}

// CompleteTask marks task n (1-based) as done. Out-of-range indices
// are ignored. Only task 1 has an event trigger today (a reaction on
// the checklist message); tasks 2 and 3 carry flags but no handler.
func (s *Session) CompleteTask(n int) {
	if n < 1 || n > len(s.tasks) {
		return
	}
	s.tasks[n-1] = true
}

// TaskDone reports whether task n (1-based) is complete.
func (s *Session) TaskDone(n int) bool {
	if n < 1 || n > len(s.tasks) {
		return false
	}
	return s.tasks[n-1]
}

// Render builds the checklist message from the current task flags:
// a fixed welcome header, a divider, and one section listing the three
// tasks with done/pending glyphs. Rendering never mutates the session;
// callers re-render before every send or update.
func (s *Session) Render() []slack.Block {
	return []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, welcomeText, false, false),
			nil, nil),
		slack.NewDividerBlock(),
		s.checklistBlock(),
	}
}

func (s *Session) checklistBlock() slack.Block {
	text := fmt.Sprintf("\n %s *Select the number of Feedbacks you would like to receive* (react to change) \n\n", glyph(s.tasks[0])) +
		fmt.Sprintf("%s *Select the sentiment score you are interested in (1-5)* \n\n", glyph(s.tasks[1])) +
		fmt.Sprintf("%s *Select the department you are interested in (eg.Food, Transport)*", glyph(s.tasks[2]))
	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
		nil, nil)
}

func glyph(done bool) string {
	if done {
		return glyphDone
	}
	return glyphPending
}
