package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/jsii-runtime-go"
)

// CodeBuild values the pipeline integration relies on.
const (
	codePipelineType   = "CODEPIPELINE"
	linuxContainerType = "LINUX_CONTAINER"
	plaintextType      = "PLAINTEXT"
	myVariableName     = "MY_VARIABLE"
)

// createCodeBuildProject declares the project the Test stage runs. Source
// and artifacts are both handed over by CodePipeline, so the buildspec path
// is resolved inside the source artifact.
func createCodeBuildProject(resources *PipelineResources) awscodebuild.CfnProject {
	cfg := resources.cfg

	project := awscodebuild.NewCfnProject(resources.stack, jsii.String("EXAMPLE_CODEBUILD_PROJECT"), &awscodebuild.CfnProjectProps{
		Description:      jsii.String("Runs the test suite for the pipeline's Test stage"),
		TimeoutInMinutes: jsii.Number(float64(cfg.BuildTimeout)),
		ServiceRole:      resources.role.AttrArn(),
		Environment: &awscodebuild.CfnProject_EnvironmentProperty{
			ComputeType:    jsii.String(cfg.ComputeType),
			Image:          jsii.String(cfg.BuildImage),
			Type:           jsii.String(linuxContainerType),
			PrivilegedMode: jsii.Bool(true),
			EnvironmentVariables: &[]*awscodebuild.CfnProject_EnvironmentVariableProperty{
				{
					Name:  jsii.String(myVariableName),
					Type:  jsii.String(plaintextType),
					Value: jsii.String(cfg.MyConfigVar),
				},
			},
		},
		Artifacts: &awscodebuild.CfnProject_ArtifactsProperty{
			Type: jsii.String(codePipelineType),
		},
		Source: &awscodebuild.CfnProject_SourceProperty{
			Type:      jsii.String(codePipelineType),
			BuildSpec: jsii.String(cfg.BuildspecPath),
		},
	})
	project.AddDependency(resources.role)

	return project
}
