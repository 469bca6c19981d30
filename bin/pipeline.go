package main

import (
	"github.com/30Piraten/codepipeline/pipelinedef"
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
)

// Stage, action and artifact names of the declared pipeline.
const (
	sourceStageName    = "GitHub"
	sourceActionName   = "Source"
	testStageName      = "Test"
	testActionName     = "MyTestStep"
	approvalActionName = "MyApprovalAction"

	sourceArtifactName  = "GitHubSource"
	resultsArtifactName = "TestResults"

	approvalMessage = "You can add a message here!"
)

// newPipelineDefinition describes the stages of the pipeline. Token values
// (project name, topic ARN, OAuth token) are plain strings at this point and
// resolve when the template is synthesized.
func newPipelineDefinition(resources *PipelineResources) *pipelinedef.Pipeline {
	cfg := resources.cfg

	source := pipelinedef.NewArtifact(sourceArtifactName)
	results := pipelinedef.NewArtifact(resultsArtifactName)

	oauthToken := awscdk.SecretValue_SecretsManager(jsii.String(cfg.SecretName.Reveal()), nil)

	return &pipelinedef.Pipeline{Stages: []pipelinedef.Stage{
		{
			Name: sourceStageName,
			Actions: []pipelinedef.Action{{
				Name:     sourceActionName,
				Category: pipelinedef.CategorySource,
				Owner:    pipelinedef.OwnerThirdParty,
				Provider: "GitHub",
				Version:  "1",
				RunOrder: 1,
				Configuration: map[string]string{
					"Owner":                cfg.GitHubOwner,
					"Repo":                 cfg.GitHubRepo,
					"Branch":               cfg.GitHubBranch,
					"OAuthToken":           *oauthToken.UnsafeUnwrap(),
					"PollForSourceChanges": "false",
				},
				Outputs: []pipelinedef.Artifact{source},
			}},
		},
		{
			Name: testStageName,
			Actions: []pipelinedef.Action{
				{
					Name:     testActionName,
					Category: pipelinedef.CategoryBuild,
					Owner:    pipelinedef.OwnerAWS,
					Provider: "CodeBuild",
					Version:  "1",
					RunOrder: 1,
					Configuration: map[string]string{
						"ProjectName": *resources.project.Ref(),
					},
					Inputs:  []pipelinedef.Artifact{source},
					Outputs: []pipelinedef.Artifact{results},
				},
				{
					Name:     approvalActionName,
					Category: pipelinedef.CategoryApproval,
					Owner:    pipelinedef.OwnerAWS,
					Provider: "Manual",
					Version:  "1",
					RunOrder: 2,
					Configuration: map[string]string{
						"NotificationArn": *resources.topic.TopicArn(),
						"CustomData":      approvalMessage,
					},
				},
			},
		},
	}}
}

// createPipeline validates the definition and declares it as a CodePipeline
// storing artifacts in the artifact bucket.
func createPipeline(resources *PipelineResources, def *pipelinedef.Pipeline) (awscodepipeline.CfnPipeline, error) {
	if err := def.Validate(); err != nil {
		return nil, errors.Wrap(err, "pipeline")
	}

	pipeline := awscodepipeline.NewCfnPipeline(resources.stack, jsii.String("EXAMPLE_PIPELINE"), &awscodepipeline.CfnPipelineProps{
		RoleArn: resources.role.AttrArn(),
		Stages:  renderStages(def),
		ArtifactStore: &awscodepipeline.CfnPipeline_ArtifactStoreProperty{
			Type:     jsii.String("S3"),
			Location: resources.artifactBucket.BucketName(),
		},
	})
	pipeline.AddDependency(resources.project)

	return pipeline, nil
}

func renderStages(def *pipelinedef.Pipeline) *[]*awscodepipeline.CfnPipeline_StageDeclarationProperty {
	stages := make([]*awscodepipeline.CfnPipeline_StageDeclarationProperty, 0, len(def.Stages))
	for _, s := range def.Stages {
		actions := make([]*awscodepipeline.CfnPipeline_ActionDeclarationProperty, 0, len(s.Actions))
		for _, a := range s.Actions {
			actions = append(actions, renderAction(a))
		}
		stages = append(stages, &awscodepipeline.CfnPipeline_StageDeclarationProperty{
			Name:    jsii.String(s.Name),
			Actions: &actions,
		})
	}
	return &stages
}

func renderAction(a pipelinedef.Action) *awscodepipeline.CfnPipeline_ActionDeclarationProperty {
	action := &awscodepipeline.CfnPipeline_ActionDeclarationProperty{
		Name: jsii.String(a.Name),
		ActionTypeId: &awscodepipeline.CfnPipeline_ActionTypeIdProperty{
			Category: jsii.String(string(a.Category)),
			Owner:    jsii.String(string(a.Owner)),
			Provider: jsii.String(a.Provider),
			Version:  jsii.String(a.Version),
		},
		RunOrder: jsii.Number(float64(a.RunOrder)),
	}

	if len(a.Configuration) > 0 {
		conf := make(map[string]interface{}, len(a.Configuration))
		for k, v := range a.Configuration {
			conf[k] = v
		}
		action.Configuration = conf
	}
	if len(a.Inputs) > 0 {
		inputs := make([]*awscodepipeline.CfnPipeline_InputArtifactProperty, 0, len(a.Inputs))
		for _, in := range a.Inputs {
			inputs = append(inputs, &awscodepipeline.CfnPipeline_InputArtifactProperty{Name: jsii.String(in.Name())})
		}
		action.InputArtifacts = &inputs
	}
	if len(a.Outputs) > 0 {
		outputs := make([]*awscodepipeline.CfnPipeline_OutputArtifactProperty, 0, len(a.Outputs))
		for _, out := range a.Outputs {
			outputs = append(outputs, &awscodepipeline.CfnPipeline_OutputArtifactProperty{Name: jsii.String(out.Name())})
		}
		action.OutputArtifacts = &outputs
	}

	return action
}
