package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DefaultConsoleBaseURL  = "https://console.aws.amazon.com/elasticbeanstalk/home"
	DefaultReleaseNotesURL = "https://docs.aws.amazon.com/elasticbeanstalk/latest/relnotes/relnotes.html"
)

// Settings is the runtime configuration for the notifier, loaded from a
// settings file and overridable through the environment.
type Settings struct {
	// SlackChannel is the destination channel ID or name.
	SlackChannel string `mapstructure:"slack_channel"`
	// SlackTokenParameter is the SSM Parameter Store path holding the bot token.
	SlackTokenParameter string `mapstructure:"slack_token_parameter"`
	// AWSProfile selects a shared-config profile; empty uses the default chain.
	AWSProfile string `mapstructure:"aws_profile"`
	Region     string `mapstructure:"region"`
	// ExcludeDeprecated drops deprecated/retired catalog entries from the
	// comparison when set.
	ExcludeDeprecated bool   `mapstructure:"exclude_deprecated"`
	ConsoleBaseURL    string `mapstructure:"console_base_url"`
	ReleaseNotesURL   string `mapstructure:"release_notes_url"`
	// ServerAddr is only used by the serve command.
	ServerAddr string `mapstructure:"server_addr"`
}

// LoadSettings reads the settings file at path. A missing file is fine when
// the environment provides everything; env vars use the EB_NOTIFIER_ prefix.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("EB_NOTIFIER")
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so bind the env-only ones.
	for _, key := range []string{
		"slack_channel", "slack_token_parameter", "aws_profile",
		"region", "exclude_deprecated",
	} {
		_ = v.BindEnv(key)
	}

	v.SetDefault("console_base_url", DefaultConsoleBaseURL)
	v.SetDefault("release_notes_url", DefaultReleaseNotesURL)
	v.SetDefault("server_addr", "127.0.0.1:8080")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if settings.SlackChannel == "" {
		return nil, fmt.Errorf("slack_channel is required")
	}

	return &settings, nil
}
