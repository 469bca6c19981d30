// Command pipelinectl operates the pipeline declared by the CDK app: it
// shows stage status, answers the manual approval, lists stored artifacts,
// checks the OAuth token secret and lints the buildspec.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/30Piraten/codepipeline/ops"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// Version is set via ldflags at build time.
var Version = "dev"

type clientFactory func(ctx context.Context, region string) (*ops.Client, error)

type app struct {
	newClient clientFactory
	log       *logrus.Logger
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	a := &app{newClient: ops.Load, log: log}
	if err := a.command(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) command(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "pipelinectl",
		Usage:   "Operate the deployed CodePipeline",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "region",
				Usage:   "AWS region (defaults to the shared config)",
				Sources: cli.EnvVars("AWS_REGION", "CODEPIPELINE_REGION"),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				a.log.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			a.statusCmd(),
			a.approveCmd(),
			a.rejectCmd(),
			a.artifactsCmd(),
			a.checkSecretCmd(),
			lintBuildspecCmd(),
		},
	}
}

func pipelineFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "pipeline",
		Aliases:  []string{"p"},
		Usage:    "Pipeline name, as exported by the stack's pipelineName output",
		Sources:  cli.EnvVars("PIPELINE_NAME"),
		Required: true,
	}
}

func (a *app) client(ctx context.Context, cmd *cli.Command) (*ops.Client, error) {
	region := cmd.String("region")
	a.log.WithField("region", region).Debug("loading AWS config")
	return a.newClient(ctx, region)
}
