// Package detector computes the set of environments running an out-of-date
// platform version.
package detector

import (
	"errors"
	"fmt"

	goversion "github.com/hashicorp/go-version"
	"github.com/rewindio/aws-eb-update-notifier/pkg/models/domain"
)

// ErrInvalidVersionFormat marks a version string that cannot be parsed. It is
// isolated to the offending entry and never aborts the rest of the scan.
var ErrInvalidVersionFormat = errors.New("invalid version format")

// Options tune the comparison.
type Options struct {
	// ExcludeDeprecated drops deprecated/retired catalog entries before
	// selecting the latest version for a branch.
	ExcludeDeprecated bool
}

// Detect returns the environments whose platform branch has a strictly newer
// version in the catalog, in input order. Environments whose branch is absent
// from the catalog are skipped; the platform may have been retired from the
// catalog but still run somewhere. Unparseable versions on either side are
// reported as warnings and the entry skipped.
func Detect(
	environments []domain.Environment,
	catalog []domain.PlatformVersionInfo,
	opts Options,
) ([]domain.OutdatedEnvironment, []domain.Warning) {
	var warnings []domain.Warning

	type latestEntry struct {
		info    domain.PlatformVersionInfo
		version *goversion.Version
	}
	latestByBranch := make(map[string]latestEntry)

	for _, info := range catalog {
		if opts.ExcludeDeprecated && info.Status == domain.PlatformStatusDeprecated {
			continue
		}

		parsed, err := goversion.NewVersion(info.Version)
		if err != nil {
			warnings = append(warnings, domain.Warning{
				Err: fmt.Errorf("%w: catalog entry %q for branch %q",
					ErrInvalidVersionFormat, info.Version, info.PlatformBranch),
			})
			continue
		}

		current, ok := latestByBranch[info.PlatformBranch]
		if !ok || parsed.GreaterThan(current.version) {
			latestByBranch[info.PlatformBranch] = latestEntry{info: info, version: parsed}
		}
	}

	var outdated []domain.OutdatedEnvironment

	for _, env := range environments {
		latest, ok := latestByBranch[env.PlatformBranch]
		if !ok {
			continue
		}

		current, err := goversion.NewVersion(env.CurrentVersion)
		if err != nil {
			warnings = append(warnings, domain.Warning{
				ApplicationName: env.ApplicationName,
				EnvironmentName: env.EnvironmentName,
				Err: fmt.Errorf("%w: environment version %q",
					ErrInvalidVersionFormat, env.CurrentVersion),
			})
			continue
		}

		if latest.version.GreaterThan(current) {
			outdated = append(outdated, domain.OutdatedEnvironment{
				Environment: env,
				Latest:      latest.info,
			})
		}
	}

	return outdated, warnings
}
