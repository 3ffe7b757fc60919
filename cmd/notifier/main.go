package main

import (
	"context"
	"fmt"
	"os"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joho/godotenv"
	"github.com/rewindio/aws-eb-update-notifier/pkg/server"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/account"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/beanstalk"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/config"
	slacknotify "github.com/rewindio/aws-eb-update-notifier/pkg/services/notify/slack"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/scan"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/secrets"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	dryRun  bool
	addr    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "notifier",
		Short: "Notify when Elastic Beanstalk environments run an outdated platform version",
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the settings file (optional when the environment provides everything)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Scan once and post the result to Slack",
		RunE:  runOnce,
	}
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the message instead of sending it")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the outdated-environment report over HTTP",
		RunE:  runServer,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides the settings file)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runOnce(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, controller, err := buildController(ctx, dryRun)
	if err != nil {
		return err
	}

	result, err := controller.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info().
		Int("outdated", len(result.Outdated)).
		Int("warnings", len(result.Warnings)).
		Bool("delivered", result.Delivered).
		Str("channel", settings.SlackChannel).
		Msg("scan complete")

	return nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, controller, err := buildReportController(ctx)
	if err != nil {
		return err
	}

	listenAddr := settings.ServerAddr
	if addr != "" {
		listenAddr = addr
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:         listenAddr,
		Dependencies: server.Dependencies{Scanner: controller},
	})

	return api.Start()
}

// buildController wires the full scan-and-notify pipeline. In dry-run mode
// the Slack token is not fetched and no transport is constructed.
func buildController(ctx context.Context, dry bool) (*config.Settings, scan.Controller, error) {
	settings, awsCfg, err := loadConfiguration(ctx)
	if err != nil {
		return nil, nil, err
	}

	var notifier slacknotify.Notifier
	if !dry {
		if settings.SlackTokenParameter == "" {
			return nil, nil, fmt.Errorf("slack_token_parameter is required")
		}

		token, err := secrets.NewParameterStore(*awsCfg).Get(ctx, settings.SlackTokenParameter)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch slack token: %w", err)
		}
		notifier = slacknotify.NewNotifier(token)
	}

	controller := scan.NewController(scan.Dependencies{
		Environments: beanstalk.NewEnvironmentExplorer(*awsCfg),
		Catalog:      beanstalk.NewCatalogExplorer(*awsCfg),
		Identity:     account.NewResolver(*awsCfg),
		Notifier:     notifier,
	}, scanOptions(settings, awsCfg.Region, dry))

	return settings, controller, nil
}

// buildReportController wires a scan pipeline with no notifier for the HTTP
// report surface.
func buildReportController(ctx context.Context) (*config.Settings, scan.Controller, error) {
	settings, awsCfg, err := loadConfiguration(ctx)
	if err != nil {
		return nil, nil, err
	}

	controller := scan.NewController(scan.Dependencies{
		Environments: beanstalk.NewEnvironmentExplorer(*awsCfg),
		Catalog:      beanstalk.NewCatalogExplorer(*awsCfg),
		Identity:     account.NewResolver(*awsCfg),
	}, scanOptions(settings, awsCfg.Region, false))

	return settings, controller, nil
}

func loadConfiguration(ctx context.Context) (*config.Settings, *awssdk.Config, error) {
	if err := godotenv.Load(); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("no .env file loaded")
	}

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	awsCfg, err := config.LoadAWSConfig(ctx, settings.AWSProfile, settings.Region)
	if err != nil {
		return nil, nil, err
	}

	return settings, awsCfg, nil
}

func scanOptions(settings *config.Settings, region string, dry bool) scan.Options {
	return scan.Options{
		Channel:           settings.SlackChannel,
		Region:            region,
		ConsoleBaseURL:    settings.ConsoleBaseURL,
		ReleaseNotesURL:   settings.ReleaseNotesURL,
		ExcludeDeprecated: settings.ExcludeDeprecated,
		DryRun:            dry,
	}
}
