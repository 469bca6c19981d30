package main

import (
	"context"
	"fmt"

	"github.com/30Piraten/codepipeline/config"
	"github.com/urfave/cli/v3"
)

func (a *app) checkSecretCmd() *cli.Command {
	return &cli.Command{
		Name:  "check-secret",
		Usage: "Check that the GitHub OAuth token secret exists, without reading it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "secret",
				Usage:    "Secrets Manager name or ARN of the OAuth token",
				Sources:  cli.EnvVars(config.EnvVar(config.KeySecretName)),
				Required: true,
			},
		},
		Action: a.runCheckSecret,
	}
}

func (a *app) runCheckSecret(ctx context.Context, cmd *cli.Command) error {
	client, err := a.client(ctx, cmd)
	if err != nil {
		return err
	}

	info, err := client.DescribeSecret(ctx, cmd.String("secret"))
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintf(w, "name:     %s\n", info.Name)
	fmt.Fprintf(w, "arn:      %s\n", info.ARN)
	fmt.Fprintf(w, "changed:  %s\n", formatTime(info.LastChanged))
	fmt.Fprintf(w, "rotation: %t\n", info.RotationEnabled)
	return nil
}
