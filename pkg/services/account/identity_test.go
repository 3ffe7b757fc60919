package account

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAliasAPI struct {
	mock.Mock
}

func (m *mockAliasAPI) ListAccountAliases(
	ctx context.Context,
	params *iam.ListAccountAliasesInput,
	_ ...func(*iam.Options),
) (*iam.ListAccountAliasesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*iam.ListAccountAliasesOutput), args.Error(1)
}

type mockIdentityAPI struct {
	mock.Mock
}

func (m *mockIdentityAPI) GetCallerIdentity(
	ctx context.Context,
	params *sts.GetCallerIdentityInput,
	_ ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sts.GetCallerIdentityOutput), args.Error(1)
}

func TestAccountAlias(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the first alias", func(t *testing.T) {
		iamClient := new(mockAliasAPI)
		iamClient.On("ListAccountAliases", ctx, mock.Anything).Return(
			&iam.ListAccountAliasesOutput{AccountAliases: []string{"acme-prod", "acme"}}, nil)

		r := &resolver{iamClient: iamClient, stsClient: new(mockIdentityAPI)}

		assert.Equal(t, "acme-prod", r.AccountAlias(ctx))
	})

	t.Run("falls back to the account ID when no alias is set", func(t *testing.T) {
		iamClient := new(mockAliasAPI)
		iamClient.On("ListAccountAliases", ctx, mock.Anything).Return(
			&iam.ListAccountAliasesOutput{}, nil)

		stsClient := new(mockIdentityAPI)
		stsClient.On("GetCallerIdentity", ctx, mock.Anything).Return(
			&sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}, nil)

		r := &resolver{iamClient: iamClient, stsClient: stsClient}

		assert.Equal(t, "123456789012", r.AccountAlias(ctx))
	})

	t.Run("degrades to empty string when both lookups fail", func(t *testing.T) {
		iamClient := new(mockAliasAPI)
		iamClient.On("ListAccountAliases", ctx, mock.Anything).
			Return(nil, fmt.Errorf("access denied"))

		stsClient := new(mockIdentityAPI)
		stsClient.On("GetCallerIdentity", ctx, mock.Anything).
			Return(nil, fmt.Errorf("access denied"))

		r := &resolver{iamClient: iamClient, stsClient: stsClient}

		assert.Equal(t, "", r.AccountAlias(ctx))
	})
}
