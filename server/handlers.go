package server

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/JTonyC/servicenow-entraid-approvals/claims"
	"github.com/JTonyC/servicenow-entraid-approvals/server/loginsession"
	"github.com/JTonyC/servicenow-entraid-approvals/servicenow"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

type approvalRow struct {
	State            string
	ShortDescription string
	RequestedBy      string
	Opened           string
	Urgency          string
}

type categoryView struct {
	Title string
	Rows  []approvalRow
}

type dashboardData struct {
	AppName    string
	UserName   string
	Categories []categoryView
}

// IndexHandler renders the dashboard for a signed-in user and the sign-in
// prompt for everyone else (GET /).
func (s *Server) IndexHandler() http.HandlerFunc {
	indexTmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session, _, err := s.sessionFromRequest(r)
		if err != nil {
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = indexTmpl.Execute(w, map[string]any{"AppName": s.config.GetAppName()})
			return
		}
		s.renderDashboard(w, r, session)
	}
}

// RefreshHandler re-fetches approvals for the current session (GET /refresh)
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusFound)
			return
		}
		s.renderDashboard(w, r, session)
	}
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, session loginsession.Session) {
	set := s.approvals.FetchApprovals(r.Context(), session.AccessToken)

	data := dashboardData{
		AppName:  s.config.GetAppName(),
		UserName: displayName(session),
	}
	titles := make([]string, 0, len(set.ByType))
	for title := range set.ByType {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		view := categoryView{Title: title}
		for _, record := range set.ByType[title] {
			flat := servicenow.FlattenApproval(record)
			view.Rows = append(view.Rows, approvalRow{
				State:            flat["approval_state"],
				ShortDescription: flat["short_description"],
				RequestedBy:      flat["requested_by"],
				Opened:           servicenow.FormatDateTime(flat["opened_at"]),
				Urgency:          flat["urgency"],
			})
		}
		data.Categories = append(data.Categories, view)
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	_ = s.dashboardTmpl.Execute(w, data)
}

// TokenHandler serves the decoded token claims as JSON (GET /token). The
// decode is unverified - a claims preview for debugging, never an
// authorization input.
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusFound)
			return
		}

		resp := map[string]any{}
		if decoded, err := claims.Preview(session.IDToken); err == nil {
			resp["id_token_claims"] = decoded
		}
		if decoded, err := claims.Preview(session.AccessToken); err == nil {
			resp["access_token_claims"] = decoded
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// ApprovalsHandler serves the raw approvals fetch result as JSON (GET /approvals)
func (s *Server) ApprovalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusFound)
			return
		}

		set := s.approvals.FetchApprovals(r.Context(), session.AccessToken)

		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"approvals":         set.Records,
			"approvals_by_type": set.ByType,
		})
	}
}

// LogoutHandler clears the login session unconditionally (GET /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, sessionID, err := s.sessionFromRequest(r); err == nil {
			if err := s.sessions.Delete(sessionID); err != nil {
				log.Error().Err(err).Msg("failed to delete login session")
			}
		}
		s.ClearSessionCookie(w, r)
		http.Redirect(w, r, RouteIndex, http.StatusFound)
	}
}

func displayName(session loginsession.Session) string {
	if session.Name != "" {
		return session.Name
	}
	if session.PreferredUsername != "" {
		return session.PreferredUsername
	}
	return "there"
}
