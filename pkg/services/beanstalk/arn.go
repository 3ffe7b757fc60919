package beanstalk

import (
	"fmt"
	"strings"
)

// parsePlatformARN splits an Elastic Beanstalk platform ARN into the platform
// name (the branch an environment is tied to) and its version.
//
// arn:aws:elasticbeanstalk:us-east-1::platform/Puma with Ruby 2.6 running on 64bit Amazon Linux/2.11.10
func parsePlatformARN(arn string) (branch, version string, err error) {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) != 6 {
		return "", "", fmt.Errorf("malformed platform ARN %q", arn)
	}

	resource := strings.Split(parts[5], "/")
	if len(resource) != 3 || resource[0] != "platform" {
		return "", "", fmt.Errorf("malformed platform ARN resource %q", parts[5])
	}

	return resource[1], resource[2], nil
}
