package onboarding

import "sync"

// DMChannel returns the canonical channel key for the bot's direct
// message conversation with a user. The start handler (which creates
// sessions) and the reaction handler (which looks them up) must both
// derive the key through this function so a reaction on the DM resolves
// to the session created at start time.
func DMChannel(userID string) string {
	return "@" + userID
}

// Registry maps (channel, user) to at most one Session for the
// lifetime of the process. Safe for concurrent use; the sessions it
// hands out are not, and must only be mutated from the event loop.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]map[string]*Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]map[string]*Session)}
}

// GetOrCreate returns the session for (channel, user), creating one if
// none exists. The created flag is true only when this call created
// the session; false means a prior start already happened and the
// caller must not send a second welcome message.
func (r *Registry) GetOrCreate(channel, user string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byUser, ok := r.sessions[channel]
	if !ok {
		byUser = make(map[string]*Session)
		r.sessions[channel] = byUser
	}
	if s, ok := byUser[user]; ok {
		return s, false
	}
	s := NewSession(channel, user)
	byUser[user] = s
	return s, true
}

// Find returns the session for (channel, user) without creating one.
func (r *Registry) Find(channel, user string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[channel][user]
	return s, ok
}
