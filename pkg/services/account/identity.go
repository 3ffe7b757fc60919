package account

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
)

// AliasAPI is the subset of the IAM client used for account identification.
type AliasAPI interface {
	ListAccountAliases(
		ctx context.Context,
		params *iam.ListAccountAliasesInput,
		optFns ...func(*iam.Options),
	) (*iam.ListAccountAliasesOutput, error)
}

// IdentityAPI is the subset of the STS client used as a fallback.
type IdentityAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// Resolver names the AWS account a run executes in. The name only decorates
// the notification, so every failure degrades to an empty string.
type Resolver interface {
	AccountAlias(ctx context.Context) string
}

type resolver struct {
	iamClient AliasAPI
	stsClient IdentityAPI
}

func NewResolver(cfg awssdk.Config) Resolver {
	return &resolver{
		iamClient: iam.NewFromConfig(cfg),
		stsClient: sts.NewFromConfig(cfg),
	}
}

// AccountAlias returns the first IAM account alias, falling back to the
// numeric account ID when no alias is set.
func (r *resolver) AccountAlias(ctx context.Context) string {
	logger := zerolog.Ctx(ctx)

	aliases, err := r.iamClient.ListAccountAliases(ctx, &iam.ListAccountAliasesInput{})
	if err != nil {
		logger.Warn().Err(err).Msg("unable to list account aliases")
	} else if len(aliases.AccountAliases) > 0 {
		return aliases.AccountAliases[0]
	}

	identity, err := r.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		logger.Warn().Err(err).Msg("unable to resolve caller identity")
		return ""
	}

	return aws.ToString(identity.Account)
}
