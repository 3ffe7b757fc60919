// Package slack delivers notifications to a Slack channel. Delivery is
// best-effort: the caller logs a terminal failure and still completes the run.
package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rewindio/aws-eb-update-notifier/pkg/models/domain"
	slackapi "github.com/slack-go/slack"
)

const (
	maxSendAttempts = 3
	initialInterval = 2 * time.Second
)

// Client is the subset of the Slack API the notifier uses.
type Client interface {
	PostMessageContext(
		ctx context.Context,
		channelID string,
		options ...slackapi.MsgOption,
	) (string, string, error)
}

// Notifier sends one notification per run to a configured channel.
type Notifier interface {
	Send(ctx context.Context, channel string, notification domain.Notification) error
}

type notifier struct {
	client        Client
	retryInterval time.Duration
}

func NewNotifier(token string) Notifier {
	return &notifier{
		client:        slackapi.New(token),
		retryInterval: initialInterval,
	}
}

func (n *notifier) Send(ctx context.Context, channel string, notification domain.Notification) error {
	blocks := buildBlocks(notification)

	operation := func() (struct{}, error) {
		_, _, err := n.client.PostMessageContext(ctx, channel,
			slackapi.MsgOptionText(notification.Summary, false),
			slackapi.MsgOptionBlocks(blocks...),
		)
		return struct{}{}, err
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = n.retryInterval

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(maxSendAttempts),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to %q: %w", channel, err)
	}

	return nil
}

// buildBlocks mirrors the message layout operators already know: a linked
// header per environment, account/region context, and the version pair with
// the new version linked to the platform release notes.
func buildBlocks(notification domain.Notification) []slackapi.Block {
	var blocks []slackapi.Block

	for _, entry := range notification.Entries {
		header := slackapi.NewSectionBlock(
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("A new Elastic Beanstalk platform version is available for\n*<%s|%s/%s>*",
					entry.ConsoleURL, entry.ApplicationName, entry.EnvironmentName),
				false, false),
			nil, nil,
		)

		accountInfo := slackapi.NewSectionBlock(nil, []*slackapi.TextBlockObject{
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("*AWS Account:*\n%s", notification.AccountAlias), false, false),
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("*Region:*\n%s", notification.Region), false, false),
		}, nil)

		versions := slackapi.NewSectionBlock(nil, []*slackapi.TextBlockObject{
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("*Platform:*\n%s", entry.PlatformBranch), false, false),
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("*Current Version:*\n%s", entry.CurrentVersion), false, false),
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("New Version:\n*<%s|%s>*", entry.ReleaseNotesURL, entry.LatestVersion), false, false),
		}, nil)

		blocks = append(blocks, header, accountInfo, versions, slackapi.NewDividerBlock())
	}

	return blocks
}
