package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/config"
	"github.com/JTonyC/servicenow-entraid-approvals/server/authflowrepo"
)

// LoginHandler begins the Authorization Code flow (GET /login): mints the
// anti-forgery state and nonce, persists them (plus the PKCE verifier in
// public-client mode) keyed by state, and redirects to the Entra authorize
// endpoint.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := generateRandomString(16)
		nonce := generateRandomString(16)

		flow := &authflowrepo.FlowState{
			Nonce:     nonce,
			ReturnURL: r.URL.Query().Get("return"),
			CreatedAt: time.Now(),
		}

		opts := []oauth2.AuthCodeOption{
			oauth2.SetAuthURLParam("nonce", nonce),
		}
		if s.authMode == config.AuthModePKCE {
			// 32 random bytes base64url-encode to 43 characters, the RFC 7636 minimum
			verifier := generateRandomString(32)
			flow.CodeVerifier = verifier
			opts = append(opts,
				oauth2.SetAuthURLParam("code_challenge", generateCodeChallenge(verifier)),
				oauth2.SetAuthURLParam("code_challenge_method", "S256"),
			)
		}

		if err := s.authState.Upsert(state, flow); err != nil {
			log.Error().Err(err).Msg("failed to store auth flow state")
			http.Error(w, "failed to begin login", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, s.oauth.AuthCodeURL(state, opts...), http.StatusFound)
	}
}
