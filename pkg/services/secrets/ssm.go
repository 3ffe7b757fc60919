package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterAPI is the subset of the SSM client used to read secrets.
type ParameterAPI interface {
	GetParameter(
		ctx context.Context,
		params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
}

// Store reads opaque secret values by parameter path.
type Store interface {
	Get(ctx context.Context, path string) (string, error)
}

type parameterStore struct {
	client ParameterAPI
}

func NewParameterStore(cfg awssdk.Config) Store {
	return &parameterStore{client: ssm.NewFromConfig(cfg)}
}

func (s *parameterStore) Get(ctx context.Context, path string) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to retrieve parameter %q: %w", path, err)
	}

	return aws.ToString(out.Parameter.Value), nil
}
