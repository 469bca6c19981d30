package main

import (
	"os"

	"github.com/30Piraten/codepipeline/config"
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/iancoleman/strcase"
	"github.com/sirupsen/logrus"
)

const appName = "codepipeline"

func main() {
	defer jsii.Close()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := config.LoadDotenv(".env"); err != nil {
		log.WithError(err).Fatal("failed to load .env")
	}

	app := awscdk.NewApp(nil)

	cfg, err := config.Load(config.ContextSource(app), config.EnvSource())
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	stackName := strcase.ToCamel(appName + "-stack")
	log.WithFields(logrus.Fields{
		"stack":       stackName,
		"myConfigVar": cfg.MyConfigVar,
		"secretName":  cfg.SecretName,
		"region":      cfg.Region,
	}).Info("declaring pipeline stack")

	if _, err := NewPipelineStack(app, stackName, &PipelineStackProps{
		StackProps: awscdk.StackProps{
			Env: env(cfg),
		},
		Config: cfg,
	}); err != nil {
		log.WithError(err).Fatal("failed to declare pipeline stack")
	}

	app.Synth(nil)
}

// env pins the stack to an account and region when configured, falling
// back to the CLI's defaults. Leaving both unset keeps the stack
// environment-agnostic.
func env(cfg *config.Config) *awscdk.Environment {
	account := firstNonEmpty(cfg.Account, os.Getenv("CDK_DEFAULT_ACCOUNT"))
	region := firstNonEmpty(cfg.Region, os.Getenv("CDK_DEFAULT_REGION"))
	if account == "" && region == "" {
		return nil
	}

	e := &awscdk.Environment{}
	if account != "" {
		e.Account = jsii.String(account)
	}
	if region != "" {
		e.Region = jsii.String(region)
	}
	return e
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
