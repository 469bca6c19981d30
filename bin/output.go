package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

// pipelineNameOutput is the only value the stack exports.
const pipelineNameOutput = "pipelineName"

func createStackOutputs(resources *PipelineResources) {
	awscdk.NewCfnOutput(resources.stack, jsii.String(pipelineNameOutput), &awscdk.CfnOutputProps{
		Description: jsii.String("Name of the generated CodePipeline"),
		Value:       resources.pipeline.Ref(),
	})
}
