// Package ops inspects and operates a deployed pipeline: stage status,
// manual approvals, stored artifacts and the OAuth token secret.
package ops

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/cockroachdb/errors"
)

// PipelineAPI is the subset of the CodePipeline client used here.
type PipelineAPI interface {
	GetPipeline(ctx context.Context, params *codepipeline.GetPipelineInput, optFns ...func(*codepipeline.Options)) (*codepipeline.GetPipelineOutput, error)
	GetPipelineState(ctx context.Context, params *codepipeline.GetPipelineStateInput, optFns ...func(*codepipeline.Options)) (*codepipeline.GetPipelineStateOutput, error)
	PutApprovalResult(ctx context.Context, params *codepipeline.PutApprovalResultInput, optFns ...func(*codepipeline.Options)) (*codepipeline.PutApprovalResultOutput, error)
}

// SecretsAPI is the subset of the Secrets Manager client used here. It
// deliberately has no way to read a secret value.
type SecretsAPI interface {
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
}

// Client bundles the AWS APIs the operations need.
type Client struct {
	Pipelines PipelineAPI
	Objects   s3.ListObjectsV2APIClient
	Secrets   SecretsAPI
}

// New creates a Client from an AWS config.
func New(cfg aws.Config) *Client {
	return &Client{
		Pipelines: codepipeline.NewFromConfig(cfg),
		Objects:   s3.NewFromConfig(cfg),
		Secrets:   secretsmanager.NewFromConfig(cfg),
	}
}

// Load resolves credentials the usual way (env, shared config, IMDS) and
// creates a Client. An empty region keeps the resolved default.
func Load(ctx context.Context, region string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}
	return New(cfg), nil
}
