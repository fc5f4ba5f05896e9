package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
)

const credentialCheckTimeout = 3 * time.Second

var ErrAWSCredentials = errors.New("AWS credentials not found; set AWS_PROFILE, run 'aws sso login', or configure ~/.aws/credentials")

// loadConfig loads the default AWS SDK config chain and verifies that
// credentials are available before any API call is made.
// IMDS (EC2 metadata) is disabled to avoid long timeouts when running locally.
func loadConfig(ctx context.Context, region string) (sdkaws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithEC2IMDSClientEnableState(imds.ClientDisabled),
	}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return sdkaws.Config{}, fmt.Errorf("%w: %v", ErrAWSCredentials, err)
	}

	credCtx, cancel := context.WithTimeout(ctx, credentialCheckTimeout)
	defer cancel()
	if _, err := cfg.Credentials.Retrieve(credCtx); err != nil {
		return sdkaws.Config{}, ErrAWSCredentials
	}

	return cfg, nil
}
