package config

import (
	"github.com/JTonyC/servicenow-entraid-approvals/internal/errors"
)

type Config interface {
	EnvConfig
	AzureConfig
	ServiceNowConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetSessionSecret() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Azure
	ServiceNow
	Security
}

func New() Config {
	return mainConfig{}
}

// Validate checks the configuration a real deployment cannot run without.
// Errors here are fatal at startup.
func Validate(c Config) error {
	if c.GetClientID() == "" {
		return errors.ErrMissingClientID
	}
	if c.GetTenantID() == "" {
		return errors.ErrMissingTenantID
	}
	if c.GetAuthMode() == AuthModeConfidential && c.GetClientSecret() == "" {
		return errors.ErrMissingClientSecret
	}
	if c.GetApprovalsURL() == "" {
		return errors.ErrMissingApprovalsURL
	}
	return nil
}
