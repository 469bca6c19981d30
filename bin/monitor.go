package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/jsii-runtime-go"
)

// createNotificationTopic declares the topic the manual approval action
// notifies. Subscriptions are managed by hand in the console so they do not
// show up as drift on the next deploy.
func createNotificationTopic(stack awscdk.Stack, displayName string) awssns.ITopic {
	return awssns.NewTopic(stack, jsii.String("MY_PIPELINE_SNS_TOPIC"), &awssns.TopicProps{
		DisplayName: jsii.String(displayName),
	})
}
