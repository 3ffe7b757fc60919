// Package scan orchestrates one notifier invocation: read the environment
// inventory and the platform catalog, compute the outdated set, and deliver
// a single notification when there is anything to report.
package scan

import (
	"context"
	"fmt"

	"github.com/rewindio/aws-eb-update-notifier/pkg/models/domain"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/account"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/beanstalk"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/detector"
	slacknotify "github.com/rewindio/aws-eb-update-notifier/pkg/services/notify/slack"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/report"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Controller runs one full scan-and-notify cycle.
type Controller interface {
	Run(ctx context.Context) (*domain.ScanResult, error)
}

// Dependencies are the external collaborators of a run. Notifier may be nil,
// which disables delivery (the HTTP report surface uses that).
type Dependencies struct {
	Environments beanstalk.EnvironmentExplorer
	Catalog      beanstalk.CatalogExplorer
	Identity     account.Resolver
	Notifier     slacknotify.Notifier
}

// Options carry the per-run configuration.
type Options struct {
	Channel           string
	Region            string
	ConsoleBaseURL    string
	ReleaseNotesURL   string
	ExcludeDeprecated bool
	// DryRun logs the message instead of delivering it.
	DryRun bool
}

type controller struct {
	deps Dependencies
	opts Options
}

func NewController(deps Dependencies, opts Options) Controller {
	return &controller{deps: deps, opts: opts}
}

func (c *controller) Run(ctx context.Context) (*domain.ScanResult, error) {
	logger := zerolog.Ctx(ctx)

	var environments []domain.Environment
	var catalog []domain.PlatformVersionInfo
	var inventoryWarnings []domain.Warning

	// The two reads have no ordering dependency, but a failure of either one
	// is fatal: there is no meaningful partial computation without both.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		environments, inventoryWarnings, err = c.deps.Environments.ListEnvironments(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		catalog, err = c.deps.Catalog.ListPlatformVersions(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("scan aborted: %w", err)
	}

	logger.Info().
		Int("environments", len(environments)).
		Int("catalog_entries", len(catalog)).
		Msg("inventory loaded")

	outdated, detectWarnings := detector.Detect(environments, catalog, detector.Options{
		ExcludeDeprecated: c.opts.ExcludeDeprecated,
	})

	result := &domain.ScanResult{
		Outdated: outdated,
		Warnings: append(inventoryWarnings, detectWarnings...),
	}

	for _, warning := range result.Warnings {
		logger.Warn().Err(warning.Err).
			Str("application", warning.ApplicationName).
			Str("environment", warning.EnvironmentName).
			Msg("entry skipped during scan")
	}

	if len(outdated) == 0 {
		logger.Info().Msg("all environments run the latest platform version")
		return result, nil
	}

	notification, ok := report.Format(outdated, report.Context{
		AccountAlias:    c.accountAlias(ctx),
		Region:          c.opts.Region,
		ConsoleBaseURL:  c.opts.ConsoleBaseURL,
		ReleaseNotesURL: c.opts.ReleaseNotesURL,
	})
	if !ok {
		return result, nil
	}

	switch {
	case c.opts.DryRun:
		logger.Info().Str("channel", c.opts.Channel).Msgf("dry run, message not sent:\n%s", notification.Summary)
	case c.deps.Notifier == nil:
		logger.Debug().Msg("no notifier configured, skipping delivery")
	default:
		// Delivery is best-effort: the computation succeeded, so a failed
		// send is logged and the run still reports success.
		if err := c.deps.Notifier.Send(ctx, c.opts.Channel, notification); err != nil {
			logger.Error().Err(err).Msg("failed to deliver notification")
		} else {
			result.Delivered = true
			logger.Info().
				Int("outdated", len(outdated)).
				Str("channel", c.opts.Channel).
				Msg("notification delivered")
		}
	}

	return result, nil
}

func (c *controller) accountAlias(ctx context.Context) string {
	if c.deps.Identity == nil {
		return ""
	}
	return c.deps.Identity.AccountAlias(ctx)
}
