package beanstalk

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	"github.com/rewindio/aws-eb-update-notifier/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ErrInventoryUnavailable marks a failed environment inventory read. The run
// cannot proceed without it.
var ErrInventoryUnavailable = errors.New("environment inventory unavailable")

// API is the subset of the Elastic Beanstalk client the explorers use.
type API interface {
	DescribeApplications(
		ctx context.Context,
		params *elasticbeanstalk.DescribeApplicationsInput,
		optFns ...func(*elasticbeanstalk.Options),
	) (*elasticbeanstalk.DescribeApplicationsOutput, error)
	DescribeEnvironments(
		ctx context.Context,
		params *elasticbeanstalk.DescribeEnvironmentsInput,
		optFns ...func(*elasticbeanstalk.Options),
	) (*elasticbeanstalk.DescribeEnvironmentsOutput, error)
	ListPlatformVersions(
		ctx context.Context,
		params *elasticbeanstalk.ListPlatformVersionsInput,
		optFns ...func(*elasticbeanstalk.Options),
	) (*elasticbeanstalk.ListPlatformVersionsOutput, error)
}

// EnvironmentExplorer reads the live environment inventory.
type EnvironmentExplorer interface {
	// ListEnvironments returns every non-deleted environment across all
	// applications, with its platform branch and current version parsed from
	// the platform ARN. Environments with an unparseable ARN are skipped and
	// reported as warnings.
	ListEnvironments(ctx context.Context) ([]domain.Environment, []domain.Warning, error)
}

type environmentExplorer struct {
	client API
}

func NewEnvironmentExplorer(cfg awssdk.Config) EnvironmentExplorer {
	return &environmentExplorer{client: elasticbeanstalk.NewFromConfig(cfg)}
}

func (e *environmentExplorer) ListEnvironments(
	ctx context.Context,
) ([]domain.Environment, []domain.Warning, error) {
	logger := zerolog.Ctx(ctx)

	apps, err := e.client.DescribeApplications(ctx, &elasticbeanstalk.DescribeApplicationsInput{})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to describe applications: %w", ErrInventoryUnavailable, err)
	}

	var environments []domain.Environment
	var warnings []domain.Warning

	for _, app := range apps.Applications {
		appName := aws.ToString(app.ApplicationName)
		logger.Debug().Str("application", appName).Msg("describing environments")

		envs, err := e.client.DescribeEnvironments(ctx, &elasticbeanstalk.DescribeEnvironmentsInput{
			ApplicationName: app.ApplicationName,
			IncludeDeleted:  aws.Bool(false),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to describe environments for %q: %w",
				ErrInventoryUnavailable, appName, err)
		}

		for _, env := range envs.Environments {
			envName := aws.ToString(env.EnvironmentName)

			branch, version, err := parsePlatformARN(aws.ToString(env.PlatformArn))
			if err != nil {
				logger.Warn().Err(err).
					Str("application", appName).
					Str("environment", envName).
					Msg("skipping environment with unparseable platform ARN")
				warnings = append(warnings, domain.Warning{
					ApplicationName: appName,
					EnvironmentName: envName,
					Err:             err,
				})
				continue
			}

			environments = append(environments, domain.Environment{
				ApplicationName: appName,
				EnvironmentName: envName,
				EnvironmentID:   aws.ToString(env.EnvironmentId),
				PlatformBranch:  branch,
				CurrentVersion:  version,
			})
		}
	}

	return environments, warnings, nil
}
