package bot

import (
	"io"
	"net/http"
	"net/url"

	"github.com/slack-go/slack"
)

// HandleMessageCount is the HTTP fallback for the /message-count slash
// command, for workspaces that deliver commands by webhook instead of
// Socket Mode. Slack expects a 200 with an empty body; the visible
// reply is posted to the origin channel via the Web API. Processing
// problems never change the response — a malformed or incomplete form
// is ignored and still acked.
func (b *Bot) HandleMessageCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if b.signingSecret != "" && !verifySignature(r.Header, body, b.signingSecret) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		b.logger.Debug("failed to parse slash command form", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	b.reportMessageCount(r.Context(),
		form.Get("user_id"), form.Get("user_name"), form.Get("channel_id"))

	w.WriteHeader(http.StatusOK)
}

// verifySignature checks the Slack request signature headers against
// the signing secret. Requests older than Slack's replay window are
// rejected by the verifier.
func verifySignature(header http.Header, body []byte, secret string) bool {
	sv, err := slack.NewSecretsVerifier(header, secret)
	if err != nil {
		return false
	}
	if _, err := sv.Write(body); err != nil {
		return false
	}
	return sv.Ensure() == nil
}
