// Package report renders the outdated-environment set into a single
// notification. Formatting is pure; delivery belongs to the transport.
package report

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rewindio/aws-eb-update-notifier/pkg/models/domain"
)

// Context carries the run metadata that decorates the message but does not
// affect which environments are reported.
type Context struct {
	AccountAlias    string
	Region          string
	ConsoleBaseURL  string
	ReleaseNotesURL string
}

// Format renders the outdated set into one notification, one summary line per
// environment, input order preserved. The second return value is false when
// there is nothing to report; the caller must not invoke the transport then.
func Format(outdated []domain.OutdatedEnvironment, runCtx Context) (domain.Notification, bool) {
	if len(outdated) == 0 {
		return domain.Notification{}, false
	}

	var lines []string
	entries := make([]domain.NotificationEntry, 0, len(outdated))

	for _, o := range outdated {
		env := o.Environment
		lines = append(lines, fmt.Sprintf("%s/%s: %s %s -> %s",
			env.ApplicationName,
			env.EnvironmentName,
			env.PlatformBranch,
			env.CurrentVersion,
			o.Latest.Version,
		))

		entries = append(entries, domain.NotificationEntry{
			ApplicationName: env.ApplicationName,
			EnvironmentName: env.EnvironmentName,
			EnvironmentID:   env.EnvironmentID,
			PlatformBranch:  env.PlatformBranch,
			CurrentVersion:  env.CurrentVersion,
			LatestVersion:   o.Latest.Version,
			ConsoleURL:      consoleURL(runCtx, env),
			ReleaseNotesURL: runCtx.ReleaseNotesURL,
		})
	}

	return domain.Notification{
		Summary:      strings.Join(lines, "\n"),
		AccountAlias: runCtx.AccountAlias,
		Region:       runCtx.Region,
		Entries:      entries,
	}, true
}

func consoleURL(runCtx Context, env domain.Environment) string {
	return fmt.Sprintf("%s?region=%s#/environment/dashboard?applicationName=%s&environmentId=%s",
		runCtx.ConsoleBaseURL,
		url.QueryEscape(runCtx.Region),
		url.QueryEscape(env.ApplicationName),
		url.QueryEscape(env.EnvironmentID),
	)
}
