package azuread_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/azuread"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	ep := azuread.Endpoint("my-tenant")
	require.Contains(t, ep.AuthURL, "login.microsoftonline.com/my-tenant")
	require.Contains(t, ep.TokenURL, "login.microsoftonline.com/my-tenant")
}

func TestDiscoverEndpoint(t *testing.T) {
	var issuer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 issuer,
			"authorization_endpoint": issuer + "/oauth2/v2.0/authorize",
			"token_endpoint":         issuer + "/oauth2/v2.0/token",
			"jwks_uri":               issuer + "/discovery/v2.0/keys",
		})
	}))
	defer srv.Close()
	issuer = srv.URL

	ep, err := azuread.DiscoverEndpoint(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/oauth2/v2.0/authorize", ep.AuthURL)
	require.Equal(t, srv.URL+"/oauth2/v2.0/token", ep.TokenURL)
}

func TestDiscoverEndpoint_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := azuread.DiscoverEndpoint(context.Background(), srv.URL)
	require.Error(t, err)
}
