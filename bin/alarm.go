package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatchactions"
	"github.com/aws/jsii-runtime-go"
)

// createBuildFailureAlarm publishes to the pipeline topic whenever the test
// project reports a failed build. Only declared when failureAlarms is set.
func createBuildFailureAlarm(resources *PipelineResources) awscloudwatch.Alarm {
	alarm := awscloudwatch.NewAlarm(resources.stack, jsii.String("CodeBuildFailureAlarm"), &awscloudwatch.AlarmProps{
		AlarmDescription: jsii.String("Alert when the pipeline's CodeBuild project fails"),
		Metric: awscloudwatch.NewMetric(&awscloudwatch.MetricProps{
			Namespace:  jsii.String("AWS/CodeBuild"),
			MetricName: jsii.String("FailedBuilds"),
			Statistic:  jsii.String("Sum"),
			Period:     awscdk.Duration_Minutes(jsii.Number(5)),
			DimensionsMap: &map[string]*string{
				"ProjectName": resources.project.Ref(),
			},
			Unit: awscloudwatch.Unit_COUNT,
		}),
		EvaluationPeriods:  jsii.Number(1),
		Threshold:          jsii.Number(1),
		ComparisonOperator: awscloudwatch.ComparisonOperator_GREATER_THAN_OR_EQUAL_TO_THRESHOLD,
		TreatMissingData:   awscloudwatch.TreatMissingData_NOT_BREACHING,
	})
	alarm.AddAlarmAction(awscloudwatchactions.NewSnsAction(resources.topic))

	return alarm
}

// createPipelineFailureAlarm publishes to the pipeline topic whenever a
// pipeline execution fails.
func createPipelineFailureAlarm(resources *PipelineResources) awscloudwatch.Alarm {
	alarm := awscloudwatch.NewAlarm(resources.stack, jsii.String("PipelineFailureAlarm"), &awscloudwatch.AlarmProps{
		AlarmDescription: jsii.String("Alert when a pipeline execution fails"),
		Metric: awscloudwatch.NewMetric(&awscloudwatch.MetricProps{
			Namespace:  jsii.String("AWS/CodePipeline"),
			MetricName: jsii.String("FailedPipelines"),
			Statistic:  jsii.String("Sum"),
			Period:     awscdk.Duration_Minutes(jsii.Number(5)),
			DimensionsMap: &map[string]*string{
				"PipelineName": resources.pipeline.Ref(),
			},
			Unit: awscloudwatch.Unit_COUNT,
		}),
		EvaluationPeriods:  jsii.Number(1),
		Threshold:          jsii.Number(1),
		ComparisonOperator: awscloudwatch.ComparisonOperator_GREATER_THAN_OR_EQUAL_TO_THRESHOLD,
		TreatMissingData:   awscloudwatch.TreatMissingData_NOT_BREACHING,
	})
	alarm.AddAlarmAction(awscloudwatchactions.NewSnsAction(resources.topic))

	return alarm
}
