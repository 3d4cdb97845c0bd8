package server

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/azuread"
	"github.com/JTonyC/servicenow-entraid-approvals/internal/config"
	"github.com/JTonyC/servicenow-entraid-approvals/server/authflowrepo"
	"github.com/JTonyC/servicenow-entraid-approvals/server/loginsession"
	"github.com/JTonyC/servicenow-entraid-approvals/servicenow"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	oauth    *oauth2.Config
	authMode config.AuthMode

	sessions  loginsession.Repo
	authState authflowrepo.Repo
	approvals *servicenow.Client

	dashboardTmpl *template.Template
}

func New(cfg config.Config, sessions loginsession.Repo, authState authflowrepo.Repo, approvals *servicenow.Client) *Server {
	endpoint := azuread.Endpoint(cfg.GetTenantID())
	if cfg.GetOIDCDiscovery() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		discovered, err := azuread.DiscoverEndpoint(ctx, azuread.IssuerURL(cfg.GetTenantID()))
		if err != nil {
			log.Warn().Err(err).Msg("OIDC discovery failed, using static Entra endpoints")
		} else {
			endpoint = discovered
		}
	}

	authMode := cfg.GetAuthMode()
	clientSecret := cfg.GetClientSecret()
	if authMode == config.AuthModePKCE {
		// Public client: the verifier replaces the secret
		clientSecret = ""
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		authMode: authMode,
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
			RedirectURL:  cfg.GetRedirectURI(),
			Scopes:       cfg.GetScopes(),
		},
		sessions:  sessions,
		authState: authState,
		approvals: approvals,
	}
	s.env = cfg.GetEnv()

	dashboardTmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}
	s.dashboardTmpl = dashboardTmpl

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
