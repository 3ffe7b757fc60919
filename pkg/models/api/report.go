package api

type OutdatedEnvironment struct {
	ApplicationName string `json:"application_name"`
	EnvironmentName string `json:"environment_name"`
	EnvironmentId   string `json:"environment_id"`
	PlatformBranch  string `json:"platform_branch"`
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
}

type Warning struct {
	ApplicationName string `json:"application_name,omitempty"`
	EnvironmentName string `json:"environment_name,omitempty"`
	Message         string `json:"message"`
}

type ScanReport struct {
	Outdated []OutdatedEnvironment `json:"outdated"`
	Warnings []Warning             `json:"warnings"`
}
