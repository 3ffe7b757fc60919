package beanstalk

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"
	"github.com/rewindio/aws-eb-update-notifier/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ErrCatalogUnavailable marks a failed platform catalog read.
var ErrCatalogUnavailable = errors.New("platform catalog unavailable")

const catalogPageSize = 100

// CatalogExplorer reads the available platform versions from the provider.
type CatalogExplorer interface {
	ListPlatformVersions(ctx context.Context) ([]domain.PlatformVersionInfo, error)
}

type catalogExplorer struct {
	client API
}

func NewCatalogExplorer(cfg awssdk.Config) CatalogExplorer {
	return &catalogExplorer{client: elasticbeanstalk.NewFromConfig(cfg)}
}

func (c *catalogExplorer) ListPlatformVersions(
	ctx context.Context,
) ([]domain.PlatformVersionInfo, error) {
	logger := zerolog.Ctx(ctx)

	var catalog []domain.PlatformVersionInfo
	var nextToken *string

	for {
		page, err := c.client.ListPlatformVersions(ctx, &elasticbeanstalk.ListPlatformVersionsInput{
			MaxRecords: aws.Int32(catalogPageSize),
			NextToken:  nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list platform versions: %w", ErrCatalogUnavailable, err)
		}

		for _, summary := range page.PlatformSummaryList {
			branch, version, err := parsePlatformARN(aws.ToString(summary.PlatformArn))
			if err != nil {
				logger.Warn().Err(err).Msg("skipping catalog entry with unparseable platform ARN")
				continue
			}

			catalog = append(catalog, domain.PlatformVersionInfo{
				PlatformBranch: branch,
				Version:        version,
				Status:         platformStatus(summary),
			})
		}

		if page.NextToken == nil {
			break
		}
		nextToken = page.NextToken
	}

	return catalog, nil
}

// platformStatus maps the provider's two lifecycle dimensions onto the
// domain status. A retired branch outranks a "recommended" version marker.
func platformStatus(summary types.PlatformSummary) domain.PlatformStatus {
	switch aws.ToString(summary.PlatformBranchLifecycleState) {
	case "deprecated", "retired":
		return domain.PlatformStatusDeprecated
	}

	if aws.ToString(summary.PlatformLifecycleState) == "recommended" {
		return domain.PlatformStatusRecommended
	}

	return domain.PlatformStatusOther
}
