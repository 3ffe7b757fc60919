package config

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

const (
	DefaultRegion = "us-east-1" // Default region if not specified in AWS profile
)

// LoadAWSConfig resolves the AWS SDK config for the given shared-config
// profile and region, and verifies that credentials can be retrieved.
func LoadAWSConfig(ctx context.Context, profile, region string) (*awssdk.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(DefaultRegion),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	// Test the credentials
	_, err = awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid AWS credentials: %w", err)
	}

	return &awsCfg, nil
}
