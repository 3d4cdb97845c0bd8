package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/JTonyC/servicenow-entraid-approvals/claims"
	"github.com/JTonyC/servicenow-entraid-approvals/internal/config"
	"github.com/JTonyC/servicenow-entraid-approvals/internal/errors"
	"github.com/JTonyC/servicenow-entraid-approvals/server/loginsession"
)

// CallbackHandler completes the Authorization Code flow (GET /getAToken).
// Every protocol failure is terminal for the request and surfaces as a
// 400-class response with the provider's detail; the session is only mutated
// after a successful exchange.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if errorParam := query.Get("error"); errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, query.Get("error_description")), http.StatusBadRequest)
			return
		}

		code := query.Get("code")
		if code == "" {
			http.Error(w, errors.ErrMissingCode.Error(), http.StatusBadRequest)
			return
		}

		state := query.Get("state")
		flow, err := s.authState.Get(state)
		if state == "" || err != nil {
			http.Error(w, errors.ErrInvalidState.Error(), http.StatusBadRequest)
			return
		}

		// State is single-use
		if err := s.authState.Delete(state); err != nil {
			http.Error(w, errors.ErrInvalidState.Error(), http.StatusInternalServerError)
			return
		}

		var opts []oauth2.AuthCodeOption
		if s.authMode == config.AuthModePKCE {
			opts = append(opts, oauth2.SetAuthURLParam("code_verifier", flow.CodeVerifier))
		}

		token, err := s.oauth.Exchange(r.Context(), code, opts...)
		if err != nil {
			var retrieveErr *oauth2.RetrieveError
			if errors.As(err, &retrieveErr) {
				// Surface the provider's raw error body
				http.Error(w, string(retrieveErr.Body), http.StatusBadRequest)
				return
			}
			log.Error().Err(err).Msg("token exchange failed")
			http.Error(w, "token exchange failed", http.StatusBadRequest)
			return
		}

		if token.AccessToken == "" {
			http.Error(w, errors.ErrNoAccessToken.Error(), http.StatusBadRequest)
			return
		}

		idToken, _ := token.Extra("id_token").(string)
		user := claims.UserInfoFromTokens(idToken, token.AccessToken)

		now := time.Now()
		expiresAt := now.Add(s.config.GetMaxSessionAge())
		if !token.Expiry.IsZero() && token.Expiry.Before(expiresAt) {
			expiresAt = token.Expiry
		}

		sessionID := generateRandomString(32)
		session := loginsession.Session{
			Name:              user.Name,
			PreferredUsername: user.PreferredUsername,
			Subject:           user.Subject,
			AccessToken:       token.AccessToken,
			IDToken:           idToken,
			CreatedAt:         now,
			ExpiresAt:         expiresAt,
		}
		if err := s.sessions.Upsert(sessionID, session); err != nil {
			log.Error().Err(err).Msg("failed to create login session")
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}

		s.SetSessionCookie(w, r, sessionID, int(time.Until(expiresAt).Seconds()))

		// Only redirect within this app
		returnURL := flow.ReturnURL
		if !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") {
			returnURL = RouteIndex
		}
		http.Redirect(w, r, returnURL, http.StatusFound)
	}
}
