package main

import (
	"github.com/30Piraten/codepipeline/iampolicy"
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
)

// Services allowed to assume the pipeline role. The same role runs the
// pipeline and the build project.
var trustedServices = []string{
	"codebuild.amazonaws.com",
	"codepipeline.amazonaws.com",
}

// createPipelineRole declares the role shared by CodePipeline and CodeBuild
// and attaches the managed policies in iampolicy.ManagedPolicies order.
func createPipelineRole(stack awscdk.Stack) (awsiam.CfnRole, error) {
	trust, err := iampolicy.TrustPolicy(trustedServices...).Map()
	if err != nil {
		return nil, errors.Wrap(err, "trust policy")
	}

	arns := make([]*string, 0, len(iampolicy.ManagedPolicies))
	for _, name := range iampolicy.ManagedPolicies {
		arns = append(arns, awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String(name)).ManagedPolicyArn())
	}

	return awsiam.NewCfnRole(stack, jsii.String("pl-role"), &awsiam.CfnRoleProps{
		AssumeRolePolicyDocument: trust,
		ManagedPolicyArns:        &arns,
	}), nil
}
