package beanstalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlatformARN(t *testing.T) {
	tests := []struct {
		name            string
		arn             string
		expectedBranch  string
		expectedVersion string
		expectError     bool
	}{
		{
			name:            "ruby platform",
			arn:             "arn:aws:elasticbeanstalk:us-east-1::platform/Puma with Ruby 2.6 running on 64bit Amazon Linux/2.11.10",
			expectedBranch:  "Puma with Ruby 2.6 running on 64bit Amazon Linux",
			expectedVersion: "2.11.10",
		},
		{
			name:            "python platform",
			arn:             "arn:aws:elasticbeanstalk:eu-west-1::platform/Python 3.8 running on 64bit Amazon Linux 2/3.3.11",
			expectedBranch:  "Python 3.8 running on 64bit Amazon Linux 2",
			expectedVersion: "3.3.11",
		},
		{
			name:        "missing resource segments",
			arn:         "arn:aws:elasticbeanstalk:us-east-1::platform",
			expectError: true,
		},
		{
			name:        "wrong resource type",
			arn:         "arn:aws:elasticbeanstalk:us-east-1::environment/my-app/my-env",
			expectError: true,
		},
		{
			name:        "not an ARN at all",
			arn:         "just-a-string",
			expectError: true,
		},
		{
			name:        "empty",
			arn:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			branch, version, err := parsePlatformARN(tt.arn)

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBranch, branch)
			assert.Equal(t, tt.expectedVersion, version)
		})
	}
}
