// Package azuread resolves the Microsoft Entra ID OAuth2 endpoints for a
// directory tenant.
package azuread

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// IssuerURL returns the tenant's v2.0 issuer.
func IssuerURL(tenantID string) string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s/v2.0", tenantID)
}

// Endpoint returns the static v2.0 authorize/token endpoints for a tenant.
func Endpoint(tenantID string) oauth2.Endpoint {
	return microsoft.AzureADEndpoint(tenantID)
}

// DiscoverEndpoint resolves the authorize/token endpoints from the issuer's
// OIDC metadata document. Callers fall back to Endpoint when discovery fails.
func DiscoverEndpoint(ctx context.Context, issuer string) (oauth2.Endpoint, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return oauth2.Endpoint{}, fmt.Errorf("oidc discovery for %q: %w", issuer, err)
	}
	return provider.Endpoint(), nil
}
