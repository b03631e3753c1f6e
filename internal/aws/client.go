package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsecr "tasnim.dev/ecr-mirror/internal/aws/ecr"
)

// identityTimeout bounds the STS lookup so a slow endpoint cannot hold up
// console startup.
const identityTimeout = 5 * time.Second

// ExplorerClient bundles what the console needs from AWS: the ECR reader and
// the caller's account for the sidebar footer.
type ExplorerClient struct {
	ECR       *awsecr.Client
	AccountID string
	Region    string
}

func NewExplorerClient(ctx context.Context, profile, region string) (*ExplorerClient, error) {
	opts := []func(*config.LoadOptions) error{}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &ExplorerClient{
		ECR:       awsecr.NewClient(ecr.NewFromConfig(cfg)),
		AccountID: callerAccount(ctx, sts.NewFromConfig(cfg)),
		Region:    cfg.Region,
	}, nil
}

// Label describes the registry for the sidebar footer, e.g.
// "ecr 123456789012/us-east-1".
func (c *ExplorerClient) Label() string {
	if c.AccountID == "" {
		return "ecr " + c.Region
	}
	return "ecr " + c.AccountID + "/" + c.Region
}

type identityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// callerAccount returns the account ID of the caller, or "" if the lookup
// fails. The account is only informational.
func callerAccount(ctx context.Context, api identityAPI) string {
	ctx, cancel := context.WithTimeout(ctx, identityTimeout)
	defer cancel()
	out, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return ""
	}
	return aws.ToString(out.Account)
}
