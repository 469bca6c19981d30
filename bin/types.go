package main

import (
	"github.com/30Piraten/codepipeline/config"
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
)

// PipelineResources carries the declared resources between the create*
// helpers. Later helpers only read fields set by earlier ones.
type PipelineResources struct {
	stack          awscdk.Stack
	cfg            *config.Config
	artifactBucket awss3.IBucket
	topic          awssns.ITopic
	role           awsiam.CfnRole
	project        awscodebuild.CfnProject
	pipeline       awscodepipeline.CfnPipeline
}
