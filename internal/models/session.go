package models

// Session holds the ephemeral state of one interactive connection. The
// caller owns the value and passes it into every auth entry point; nothing
// here is shared process-wide.
type Session struct {
	// UserID references the authenticated user, or "" when unauthenticated
	UserID string

	// Bootstrap state that survives a logout
	Page        string
	Initialized bool
	Config      map[string]string

	// Values carries everything else scoped to the session (drafts,
	// notifications, temp data). Cleared on logout.
	Values map[string]any
}

// NewSession creates an unauthenticated session at the start page
func NewSession() *Session {
	return &Session{
		Page:   "dashboard",
		Values: make(map[string]any),
	}
}

// Set stores a session-scoped value
func (s *Session) Set(key string, value any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = value
}

// Get reads a session-scoped value
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// Reset clears the authenticated identity and all session-scoped values,
// keeping only the navigation page, the initialization flag and the loaded
// configuration. The next page is always the login page.
func (s *Session) Reset() {
	s.UserID = ""
	s.Values = make(map[string]any)
	s.Page = "login"
}
