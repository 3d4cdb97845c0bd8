package loginsession

import "time"

// Session is the server-side state for one signed-in browser session.
type Session struct {
	// Display identity, decoded (unverified) from token claims
	Name              string
	PreferredUsername string
	Subject           string

	// Tokens: access is what calls the approvals API, ID is display-only
	AccessToken string
	IDToken     string

	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
