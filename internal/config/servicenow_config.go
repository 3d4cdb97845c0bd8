package config

import "fmt"

type ServiceNowConfig interface {
	GetApprovalsURL() string
}

type ServiceNow struct{}

var _ ServiceNowConfig = ServiceNow{}

// GetApprovalsURL returns the full approvals endpoint URL. SERVICE_NOW_API
// takes precedence; otherwise the URL is built from SN_INSTANCE and SN_API_PATH.
func (ServiceNow) GetApprovalsURL() string {
	if url := GetEnv("SERVICE_NOW_API", ""); url != "" {
		return url
	}
	instance := GetEnv("SN_INSTANCE", "")
	if instance == "" {
		return ""
	}
	path := GetEnv("SN_API_PATH", "/api/now/approvals")
	return fmt.Sprintf("https://%s.service-now.com%s", instance, path)
}
