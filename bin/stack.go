package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/cockroachdb/errors"
)

// NewPipelineStack declares the artifact bucket, notification topic, role,
// build project and pipeline, in that order, and exports the pipeline name.
func NewPipelineStack(scope constructs.Construct, id string, props *PipelineStackProps) (awscdk.Stack, error) {
	if props == nil || props.Config == nil {
		return nil, errors.New("pipeline stack requires a config")
	}

	resources := &PipelineResources{
		stack: initializeStack(scope, id, props),
		cfg:   props.Config,
	}

	resources.artifactBucket = createArtifactBucket(resources.stack)
	resources.topic = createNotificationTopic(resources.stack, resources.cfg.TopicDisplayName)

	role, err := createPipelineRole(resources.stack)
	if err != nil {
		return nil, err
	}
	resources.role = role

	resources.project = createCodeBuildProject(resources)

	pipeline, err := createPipeline(resources, newPipelineDefinition(resources))
	if err != nil {
		return nil, err
	}
	resources.pipeline = pipeline

	if resources.cfg.FailureAlarms {
		createBuildFailureAlarm(resources)
		createPipelineFailureAlarm(resources)
	}

	createStackOutputs(resources)

	return resources.stack, nil
}
