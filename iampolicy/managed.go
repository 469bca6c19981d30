package iampolicy

// ManagedPolicies are the AWS managed policies attached to the pipeline
// role, in attachment order.
var ManagedPolicies = []string{
	"AWSCodeBuildDeveloperAccess",
	"CloudWatchFullAccess",
	"AmazonS3FullAccess",
	"AmazonSSMReadOnlyAccess",
}
