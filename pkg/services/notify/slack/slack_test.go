package slack

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rewindio/aws-eb-update-notifier/pkg/models/domain"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) PostMessageContext(
	ctx context.Context,
	channelID string,
	_ ...slackapi.MsgOption,
) (string, string, error) {
	args := m.Called(ctx, channelID)
	return args.String(0), args.String(1), args.Error(2)
}

func testNotification() domain.Notification {
	return domain.Notification{
		Summary:      "api/prod: python3.7 3.7.1 -> 3.7.9",
		AccountAlias: "acme-prod",
		Region:       "us-east-1",
		Entries: []domain.NotificationEntry{
			{
				ApplicationName: "api",
				EnvironmentName: "prod",
				EnvironmentID:   "e-abc123",
				PlatformBranch:  "python3.7",
				CurrentVersion:  "3.7.1",
				LatestVersion:   "3.7.9",
				ConsoleURL:      "https://console.aws.amazon.com/elasticbeanstalk/home",
				ReleaseNotesURL: "https://docs.aws.amazon.com/elasticbeanstalk/latest/relnotes/relnotes.html",
			},
		},
	}
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("posts once on success", func(t *testing.T) {
		client := new(mockClient)
		client.On("PostMessageContext", ctx, "#ops").Return("#ops", "ts", nil).Once()

		n := &notifier{client: client, retryInterval: time.Millisecond}
		err := n.Send(ctx, "#ops", testNotification())

		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		client := new(mockClient)
		client.On("PostMessageContext", ctx, "#ops").
			Return("", "", fmt.Errorf("rate_limited")).Once()
		client.On("PostMessageContext", ctx, "#ops").
			Return("#ops", "ts", nil).Once()

		n := &notifier{client: client, retryInterval: time.Millisecond}
		err := n.Send(ctx, "#ops", testNotification())

		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		client := new(mockClient)
		client.On("PostMessageContext", ctx, "#ops").
			Return("", "", fmt.Errorf("channel_not_found")).Times(maxSendAttempts)

		n := &notifier{client: client, retryInterval: time.Millisecond}
		err := n.Send(ctx, "#ops", testNotification())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "channel_not_found")
		client.AssertExpectations(t)
	})
}

func TestBuildBlocks(t *testing.T) {
	notification := testNotification()
	notification.Entries = append(notification.Entries, notification.Entries[0])

	blocks := buildBlocks(notification)

	// Header, account/region fields, version fields, divider — per entry.
	assert.Len(t, blocks, 4*len(notification.Entries))

	header, ok := blocks[0].(*slackapi.SectionBlock)
	assert.True(t, ok)
	assert.Contains(t, header.Text.Text, "api/prod")
	assert.Contains(t, header.Text.Text, notification.Entries[0].ConsoleURL)

	accountInfo, ok := blocks[1].(*slackapi.SectionBlock)
	assert.True(t, ok)
	assert.Contains(t, accountInfo.Fields[0].Text, "acme-prod")
	assert.Contains(t, accountInfo.Fields[1].Text, "us-east-1")

	versions, ok := blocks[2].(*slackapi.SectionBlock)
	assert.True(t, ok)
	assert.Contains(t, versions.Fields[1].Text, "3.7.1")
	assert.Contains(t, versions.Fields[2].Text, "3.7.9")

	_, ok = blocks[3].(*slackapi.DividerBlock)
	assert.True(t, ok)
}
