package config_test

import (
	"testing"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/config"
	"github.com/JTonyC/servicenow-entraid-approvals/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("missing client id", func(t *testing.T) {
		t.Setenv("AZURE_CLIENT_ID", "")
		t.Setenv("AZURE_TENANT_ID", "tenant")
		err := config.Validate(config.New())
		require.ErrorIs(t, err, errors.ErrMissingClientID)
	})

	t.Run("missing tenant id", func(t *testing.T) {
		t.Setenv("AZURE_CLIENT_ID", "client")
		t.Setenv("AZURE_TENANT_ID", "")
		err := config.Validate(config.New())
		require.ErrorIs(t, err, errors.ErrMissingTenantID)
	})

	t.Run("confidential mode requires secret", func(t *testing.T) {
		t.Setenv("AZURE_CLIENT_ID", "client")
		t.Setenv("AZURE_TENANT_ID", "tenant")
		t.Setenv("AZURE_AUTH_MODE", "confidential")
		t.Setenv("AZURE_CLIENT_SECRET", "")
		err := config.Validate(config.New())
		require.ErrorIs(t, err, errors.ErrMissingClientSecret)
	})

	t.Run("pkce mode without secret is valid", func(t *testing.T) {
		t.Setenv("AZURE_CLIENT_ID", "client")
		t.Setenv("AZURE_TENANT_ID", "tenant")
		t.Setenv("AZURE_CLIENT_SECRET", "")
		t.Setenv("SERVICE_NOW_API", "https://example.service-now.com/api/now/approvals")
		require.NoError(t, config.Validate(config.New()))
	})
}

func TestAzure_GetScopes(t *testing.T) {
	t.Run("explicit scope", func(t *testing.T) {
		t.Setenv("AZURE_SCOPE", "api://abc/approvals.read openid")
		require.Equal(t, []string{"api://abc/approvals.read", "openid"}, config.New().GetScopes())
	})

	t.Run("derived from client id", func(t *testing.T) {
		t.Setenv("AZURE_SCOPE", "")
		t.Setenv("AZURE_CLIENT_ID", "my-client")
		require.Equal(t, []string{"api://my-client/approvals.read"}, config.New().GetScopes())
	})
}

func TestAzure_GetAuthMode(t *testing.T) {
	t.Run("secret implies confidential", func(t *testing.T) {
		t.Setenv("AZURE_AUTH_MODE", "")
		t.Setenv("AZURE_CLIENT_SECRET", "s3cret")
		require.Equal(t, config.AuthModeConfidential, config.New().GetAuthMode())
	})

	t.Run("no secret implies pkce", func(t *testing.T) {
		t.Setenv("AZURE_AUTH_MODE", "")
		t.Setenv("AZURE_CLIENT_SECRET", "")
		require.Equal(t, config.AuthModePKCE, config.New().GetAuthMode())
	})

	t.Run("explicit mode wins", func(t *testing.T) {
		t.Setenv("AZURE_AUTH_MODE", "pkce")
		t.Setenv("AZURE_CLIENT_SECRET", "s3cret")
		require.Equal(t, config.AuthModePKCE, config.New().GetAuthMode())
	})
}

func TestServiceNow_GetApprovalsURL(t *testing.T) {
	t.Run("full url wins", func(t *testing.T) {
		t.Setenv("SERVICE_NOW_API", "https://corp.service-now.com/api/x/approvals")
		t.Setenv("SN_INSTANCE", "ignored")
		require.Equal(t, "https://corp.service-now.com/api/x/approvals", config.New().GetApprovalsURL())
	})

	t.Run("built from instance and path", func(t *testing.T) {
		t.Setenv("SERVICE_NOW_API", "")
		t.Setenv("SN_INSTANCE", "corp")
		t.Setenv("SN_API_PATH", "")
		require.Equal(t, "https://corp.service-now.com/api/now/approvals", config.New().GetApprovalsURL())
	})
}
