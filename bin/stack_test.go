package main

import (
	"encoding/json"
	"testing"

	"github.com/30Piraten/codepipeline/config"
	"github.com/30Piraten/codepipeline/pipelinedef"
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, overrides config.MapSource) *config.Config {
	t.Helper()

	cfg, err := config.Load(overrides, config.MapSource{
		config.KeySecretName:  "github/oauth-token",
		config.KeyMyConfigVar: "configVarValue",
	})
	require.NoError(t, err)
	return cfg
}

func synth(t *testing.T, cfg *config.Config) assertions.Template {
	t.Helper()

	app := awscdk.NewApp(nil)
	stack, err := NewPipelineStack(app, "TestPipelineStack", &PipelineStackProps{Config: cfg})
	require.NoError(t, err)
	return assertions.Template_FromStack(stack, nil)
}

// singleResource returns the logical id and body of the only resource of
// the given type.
func singleResource(t *testing.T, tmpl assertions.Template, typ string) (string, map[string]interface{}) {
	t.Helper()

	found := *tmpl.FindResources(jsii.String(typ), nil)
	require.Len(t, found, 1, typ)
	for id, body := range found {
		return id, *body
	}
	return "", nil
}

func properties(t *testing.T, tmpl assertions.Template, typ string) map[string]interface{} {
	t.Helper()

	_, body := singleResource(t, tmpl, typ)
	props, ok := body["Properties"].(map[string]interface{})
	require.True(t, ok)
	return props
}

func pipelineStages(t *testing.T, tmpl assertions.Template) []map[string]interface{} {
	t.Helper()

	raw, ok := properties(t, tmpl, "AWS::CodePipeline::Pipeline")["Stages"].([]interface{})
	require.True(t, ok)

	stages := make([]map[string]interface{}, 0, len(raw))
	for _, s := range raw {
		stages = append(stages, s.(map[string]interface{}))
	}
	return stages
}

func stageAction(t *testing.T, stage map[string]interface{}, name string) map[string]interface{} {
	t.Helper()

	for _, a := range stage["Actions"].([]interface{}) {
		action := a.(map[string]interface{})
		if action["Name"] == name {
			return action
		}
	}
	t.Fatalf("action %q not found in stage %v", name, stage["Name"])
	return nil
}

func artifactNames(v interface{}) []string {
	list, _ := v.([]interface{})
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.(map[string]interface{})["Name"].(string))
	}
	return names
}

func toJSONString(t *testing.T, v interface{}) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestNewPipelineStackRequiresConfig(t *testing.T) {
	app := awscdk.NewApp(nil)
	_, err := NewPipelineStack(app, "NoConfig", nil)
	require.Error(t, err)

	_, err = NewPipelineStack(app, "NoConfig2", &PipelineStackProps{})
	require.Error(t, err)
}

func TestResourceCounts(t *testing.T) {
	tmpl := synth(t, testConfig(t, nil))

	for typ, n := range map[string]float64{
		"AWS::S3::Bucket":             1,
		"AWS::SNS::Topic":             1,
		"AWS::IAM::Role":              1,
		"AWS::CodeBuild::Project":     1,
		"AWS::CodePipeline::Pipeline": 1,
		"AWS::CloudWatch::Alarm":      0,
		"AWS::SNS::Subscription":      0,
	} {
		tmpl.ResourceCountIs(jsii.String(typ), jsii.Number(n))
	}
}

func TestTopicDisplayName(t *testing.T) {
	tmpl := synth(t, testConfig(t, nil))
	tmpl.HasResourceProperties(jsii.String("AWS::SNS::Topic"), map[string]interface{}{
		"DisplayName": "pipesns",
	})
}

func TestRoleTrustPolicyAndAttachments(t *testing.T) {
	tmpl := synth(t, testConfig(t, nil))
	props := properties(t, tmpl, "AWS::IAM::Role")

	doc := props["AssumeRolePolicyDocument"].(map[string]interface{})
	stmts := doc["Statement"].([]interface{})
	require.Len(t, stmts, 1)
	stmt := stmts[0].(map[string]interface{})
	assert.Equal(t, "sts:AssumeRole", stmt["Action"])
	assert.Equal(t, "Allow", stmt["Effect"])

	services := stmt["Principal"].(map[string]interface{})["Service"]
	assert.Equal(t, []interface{}{"codebuild.amazonaws.com", "codepipeline.amazonaws.com"}, services)

	arns := props["ManagedPolicyArns"].([]interface{})
	require.Len(t, arns, 4)
	for i, want := range []string{
		"AWSCodeBuildDeveloperAccess",
		"CloudWatchFullAccess",
		"AmazonS3FullAccess",
		"AmazonSSMReadOnlyAccess",
	} {
		assert.Contains(t, toJSONString(t, arns[i]), ":iam::aws:policy/"+want, "attachment %d", i)
	}
}

func TestCodeBuildProject(t *testing.T) {
	tmpl := synth(t, testConfig(t, nil))

	tmpl.HasResourceProperties(jsii.String("AWS::CodeBuild::Project"), map[string]interface{}{
		"Artifacts": map[string]interface{}{"Type": "CODEPIPELINE"},
		"Source": map[string]interface{}{
			"Type":      "CODEPIPELINE",
			"BuildSpec": "./buildspec.yaml",
		},
		"TimeoutInMinutes": 10,
		"Environment": map[string]interface{}{
			"ComputeType":    "BUILD_GENERAL1_SMALL",
			"Image":          "aws/codebuild/standard:7.0",
			"Type":           "LINUX_CONTAINER",
			"PrivilegedMode": true,
			"EnvironmentVariables": []interface{}{
				map[string]interface{}{
					"Name":  "MY_VARIABLE",
					"Type":  "PLAINTEXT",
					"Value": "configVarValue",
				},
			},
		},
	})
}

func TestExplicitDependencies(t *testing.T) {
	tmpl := synth(t, testConfig(t, nil))

	roleID, _ := singleResource(t, tmpl, "AWS::IAM::Role")
	projectID, project := singleResource(t, tmpl, "AWS::CodeBuild::Project")
	_, pipeline := singleResource(t, tmpl, "AWS::CodePipeline::Pipeline")

	assert.Contains(t, project["DependsOn"], roleID)
	assert.Contains(t, pipeline["DependsOn"], projectID)
}

func TestPipelineStageOrder(t *testing.T) {
	stages := pipelineStages(t, synth(t, testConfig(t, nil)))

	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s["Name"].(string))
	}
	assert.Equal(t, []string{"GitHub", "Test"}, names)
}

func TestPipelineArtifactChain(t *testing.T) {
	stages := pipelineStages(t, synth(t, testConfig(t, nil)))

	source := stageAction(t, stages[0], "Source")
	test := stageAction(t, stages[1], "MyTestStep")
	approval := stageAction(t, stages[1], "MyApprovalAction")

	assert.Equal(t, []string{"GitHubSource"}, artifactNames(source["OutputArtifacts"]))
	assert.Equal(t, artifactNames(source["OutputArtifacts"]), artifactNames(test["InputArtifacts"]))
	assert.Equal(t, []string{"TestResults"}, artifactNames(test["OutputArtifacts"]))
	assert.Empty(t, artifactNames(approval["InputArtifacts"]))
	assert.Empty(t, artifactNames(approval["OutputArtifacts"]))

	assert.EqualValues(t, 1, test["RunOrder"])
	assert.EqualValues(t, 2, approval["RunOrder"])
}

func TestPipelineActionConfiguration(t *testing.T) {
	stages := pipelineStages(t, synth(t, testConfig(t, config.MapSource{
		config.KeyGitHubOwner:  "30Piraten",
		config.KeyGitHubRepo:   "pipeline",
		config.KeyGitHubBranch: "main",
	})))

	source := stageAction(t, stages[0], "Source")
	assert.Equal(t, map[string]interface{}{
		"Category": "Source",
		"Owner":    "ThirdParty",
		"Provider": "GitHub",
		"Version":  "1",
	}, source["ActionTypeId"])

	conf := source["Configuration"].(map[string]interface{})
	assert.Equal(t, "30Piraten", conf["Owner"])
	assert.Equal(t, "pipeline", conf["Repo"])
	assert.Equal(t, "main", conf["Branch"])
	assert.Equal(t, "false", conf["PollForSourceChanges"])
	assert.Equal(t, "{{resolve:secretsmanager:github/oauth-token:SecretString:::}}", conf["OAuthToken"])

	approval := stageAction(t, stages[1], "MyApprovalAction")
	approvalConf := approval["Configuration"].(map[string]interface{})
	assert.Equal(t, "You can add a message here!", approvalConf["CustomData"])
	assert.Contains(t, toJSONString(t, approvalConf["NotificationArn"]), "Ref")

	test := stageAction(t, stages[1], "MyTestStep")
	assert.Contains(t, toJSONString(t, test["Configuration"]), "ProjectName")
}

func TestPipelineArtifactStore(t *testing.T) {
	tmpl := synth(t, testConfig(t, nil))
	bucketID, _ := singleResource(t, tmpl, "AWS::S3::Bucket")

	tmpl.HasResourceProperties(jsii.String("AWS::CodePipeline::Pipeline"), map[string]interface{}{
		"ArtifactStore": map[string]interface{}{
			"Type":     "S3",
			"Location": map[string]interface{}{"Ref": bucketID},
		},
	})
}

func TestPipelineNameOutput(t *testing.T) {
	tmpl := synth(t, testConfig(t, nil))
	_, _ = singleResource(t, tmpl, "AWS::CodePipeline::Pipeline")

	tmpl.HasOutput(jsii.String("pipelineName"), map[string]interface{}{
		"Value": map[string]interface{}{"Ref": assertions.Match_AnyValue()},
	})
}

func TestSynthIsDeterministic(t *testing.T) {
	cfg := testConfig(t, nil)

	first := synth(t, cfg).ToJSON()
	second := synth(t, cfg).ToJSON()
	assert.Equal(t, *first, *second)
}

func TestFailureAlarms(t *testing.T) {
	tmpl := synth(t, testConfig(t, config.MapSource{config.KeyFailureAlarms: "true"}))

	projectID, _ := singleResource(t, tmpl, "AWS::CodeBuild::Project")
	pipelineID, _ := singleResource(t, tmpl, "AWS::CodePipeline::Pipeline")
	topicID, _ := singleResource(t, tmpl, "AWS::SNS::Topic")

	tmpl.ResourceCountIs(jsii.String("AWS::CloudWatch::Alarm"), jsii.Number(2))
	tmpl.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"MetricName":   "FailedBuilds",
		"Namespace":    "AWS/CodeBuild",
		"Dimensions":   []interface{}{map[string]interface{}{"Name": "ProjectName", "Value": map[string]interface{}{"Ref": projectID}}},
		"AlarmActions": []interface{}{map[string]interface{}{"Ref": topicID}},
	})
	tmpl.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"MetricName":   "FailedPipelines",
		"Namespace":    "AWS/CodePipeline",
		"Dimensions":   []interface{}{map[string]interface{}{"Name": "PipelineName", "Value": map[string]interface{}{"Ref": pipelineID}}},
		"AlarmActions": []interface{}{map[string]interface{}{"Ref": topicID}},
	})
}

func TestPipelineDefinitionIsValid(t *testing.T) {
	app := awscdk.NewApp(nil)
	cfg := testConfig(t, nil)
	resources := &PipelineResources{stack: awscdk.NewStack(app, jsii.String("Def"), nil), cfg: cfg}
	resources.artifactBucket = createArtifactBucket(resources.stack)
	resources.topic = createNotificationTopic(resources.stack, cfg.TopicDisplayName)
	role, err := createPipelineRole(resources.stack)
	require.NoError(t, err)
	resources.role = role
	resources.project = createCodeBuildProject(resources)

	def := newPipelineDefinition(resources)
	require.NoError(t, def.Validate())

	test, ok := def.Action("Test", "MyTestStep")
	require.True(t, ok)
	stage, producer, ok := def.Producer(test.Inputs[0])
	require.True(t, ok)
	assert.Equal(t, "GitHub", stage)
	assert.Equal(t, "Source", producer.Name)

	// A broken chain is rejected before anything reaches the template.
	test.Inputs = []pipelinedef.Artifact{pipelinedef.NewArtifact("GitHubSrc")}
	_, err = createPipeline(resources, def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `input artifact "GitHubSrc" is not produced by any action`)
}
