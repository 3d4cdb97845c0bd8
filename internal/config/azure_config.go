package config

import (
	"fmt"
	"os"
	"strings"
)

// AuthMode selects the Authorization Code flow variant.
type AuthMode string

const (
	// AuthModeConfidential exchanges the code with a server-held client secret.
	AuthModeConfidential AuthMode = "confidential"
	// AuthModePKCE is the public-client flow: no secret, verifier/challenge instead.
	AuthModePKCE AuthMode = "pkce"
)

type AzureConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetTenantID() string
	GetScopes() []string
	GetRedirectURI() string
	GetAuthMode() AuthMode
	GetOIDCDiscovery() bool
}

type Azure struct{}

var _ AzureConfig = Azure{}

func (Azure) GetClientID() string {
	return GetEnv("AZURE_CLIENT_ID", "")
}

func (Azure) GetClientSecret() string {
	return GetEnv("AZURE_CLIENT_SECRET", "")
}

func (Azure) GetTenantID() string {
	return GetEnv("AZURE_TENANT_ID", "")
}

// GetScopes returns the requested scopes. When AZURE_SCOPE is unset the scope
// is derived from the client ID, matching the downstream API's app registration.
func (a Azure) GetScopes() []string {
	scope := GetEnv("AZURE_SCOPE", "")
	if scope == "" {
		scope = fmt.Sprintf("api://%s/approvals.read", a.GetClientID())
	}
	return strings.Fields(scope)
}

func (Azure) GetRedirectURI() string {
	return GetEnv("REDIRECT_URI", "http://localhost:8080/getAToken")
}

// GetAuthMode selects confidential vs PKCE. Explicit AZURE_AUTH_MODE wins;
// otherwise the presence of a client secret decides.
func (a Azure) GetAuthMode() AuthMode {
	switch strings.ToLower(os.Getenv("AZURE_AUTH_MODE")) {
	case string(AuthModeConfidential):
		return AuthModeConfidential
	case string(AuthModePKCE):
		return AuthModePKCE
	}
	if a.GetClientSecret() == "" {
		return AuthModePKCE
	}
	return AuthModeConfidential
}

// GetOIDCDiscovery enables resolving the Entra endpoints from the tenant's
// OIDC metadata document instead of the static URLs.
func (Azure) GetOIDCDiscovery() bool {
	return strings.EqualFold(os.Getenv("AZURE_OIDC_DISCOVERY"), "true")
}
