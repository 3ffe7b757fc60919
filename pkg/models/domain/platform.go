package domain

// PlatformStatus classifies a catalog entry's lifecycle.
type PlatformStatus string

const (
	PlatformStatusRecommended PlatformStatus = "recommended"
	PlatformStatusDeprecated  PlatformStatus = "deprecated"
	PlatformStatusOther       PlatformStatus = "other"
)

// Environment is one deployed Elastic Beanstalk environment, read fresh on
// every invocation and never persisted.
type Environment struct {
	ApplicationName string
	EnvironmentName string
	EnvironmentID   string
	// PlatformBranch is the platform name parsed from the platform ARN,
	// e.g. "Puma with Ruby 2.6 running on 64bit Amazon Linux".
	PlatformBranch string
	// CurrentVersion is the platform version the environment runs,
	// e.g. "2.11.10".
	CurrentVersion string
}

// PlatformVersionInfo is one available platform release from the catalog.
type PlatformVersionInfo struct {
	PlatformBranch string
	Version        string
	Status         PlatformStatus
}

// OutdatedEnvironment pairs an environment with the newest catalog entry
// for its branch. It exists only when the latest version is strictly newer
// than the one the environment runs.
type OutdatedEnvironment struct {
	Environment Environment
	Latest      PlatformVersionInfo
}
