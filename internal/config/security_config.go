package config

import "time"

type SecurityConfig interface {
	GetMaxSessionAge() time.Duration
	GetAuthFlowTimeout() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetMaxSessionAge() time.Duration {
	return 8 * time.Hour
}

// GetAuthFlowTimeout bounds how long a state/verifier pair stays valid
// between the /login redirect and the callback.
func (Security) GetAuthFlowTimeout() time.Duration {
	return 10 * time.Minute
}
