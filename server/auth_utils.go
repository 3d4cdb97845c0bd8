package server

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/errors"
	"github.com/JTonyC/servicenow-entraid-approvals/server/loginsession"
)

// sessionCookieName is the cookie carrying the signed login session ID
const sessionCookieName = "approvalsSessionId"

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// generateCodeChallenge creates a PKCE S256 code challenge from a verifier
func generateCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// signSessionID returns "<id>.<hmac>" so a tampered cookie never reaches the
// session repo.
func signSessionID(sessionID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sessionID))
	return sessionID + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verifySessionCookie(value, secret string) (string, bool) {
	sessionID, _, found := strings.Cut(value, ".")
	if !found || sessionID == "" {
		return "", false
	}
	if !hmac.Equal([]byte(signSessionID(sessionID, secret)), []byte(value)) {
		return "", false
	}
	return sessionID, true
}

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signSessionID(sessionID, s.config.GetSessionSecret()),
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (s *Server) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// sessionFromRequest resolves the caller's login session from the signed
// cookie. Returns the session and its ID, or a session error.
func (s *Server) sessionFromRequest(r *http.Request) (loginsession.Session, string, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return loginsession.Session{}, "", errors.ErrSessionNotFound
	}
	sessionID, ok := verifySessionCookie(cookie.Value, s.config.GetSessionSecret())
	if !ok {
		return loginsession.Session{}, "", errors.ErrSessionNotFound
	}
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return loginsession.Session{}, "", err
	}
	return session, sessionID, nil
}
