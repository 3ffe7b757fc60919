package domain

// NotificationEntry is one outdated environment rendered for delivery.
type NotificationEntry struct {
	ApplicationName string
	EnvironmentName string
	EnvironmentID   string
	PlatformBranch  string
	CurrentVersion  string
	LatestVersion   string
	ConsoleURL      string
	ReleaseNotesURL string
}

// Notification is the single message produced by one run. Summary holds one
// plain-text line per outdated environment, in input order.
type Notification struct {
	Summary      string
	AccountAlias string
	Region       string
	Entries      []NotificationEntry
}

// Warning records a non-fatal, per-entry failure encountered during a scan.
type Warning struct {
	ApplicationName string
	EnvironmentName string
	Err             error
}

// ScanResult is the outcome of one invocation.
type ScanResult struct {
	Outdated []OutdatedEnvironment
	Warnings []Warning
	// Delivered is true when a notification was handed to the transport
	// and accepted.
	Delivered bool
}
