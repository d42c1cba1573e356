// Package responses defines API response types used by the sitebuilder HTTP handlers.
package responses

// HealthResponse represents the health check API response. Timestamp is in Unix milliseconds.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// SitesResponse lists the generated sites.
type SitesResponse struct {
	Sites   []string `json:"sites"`
	Count   int      `json:"count"`
	Message string   `json:"message"`
}

// DeploymentInfoResponse describes the hosting platforms built sites are prepared for.
type DeploymentInfoResponse struct {
	SupportedPlatforms map[string]string `json:"supportedPlatforms"`
	Message            string            `json:"message"`
}

// SectionTypesResponse lists the section types a descriptor may use.
type SectionTypesResponse struct {
	SupportedTypes []string `json:"supportedTypes"`
	Description    string   `json:"description"`
}
