package main

import (
	"context"
	"fmt"

	"github.com/30Piraten/codepipeline/ops"
	"github.com/urfave/cli/v3"
)

func approvalFlags() []cli.Flag {
	return []cli.Flag{
		pipelineFlag(),
		&cli.StringFlag{
			Name:  "stage",
			Usage: "Stage holding the approval action",
			Value: "Test",
		},
		&cli.StringFlag{
			Name:  "action",
			Usage: "Name of the manual approval action",
			Value: "MyApprovalAction",
		},
		&cli.StringFlag{
			Name:  "summary",
			Usage: "Comment recorded with the decision",
		},
	}
}

func (a *app) approveCmd() *cli.Command {
	return &cli.Command{
		Name:   "approve",
		Usage:  "Approve the pending manual approval",
		Flags:  approvalFlags(),
		Action: a.decide(true),
	}
}

func (a *app) rejectCmd() *cli.Command {
	return &cli.Command{
		Name:   "reject",
		Usage:  "Reject the pending manual approval",
		Flags:  approvalFlags(),
		Action: a.decide(false),
	}
}

func (a *app) decide(approve bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		client, err := a.client(ctx, cmd)
		if err != nil {
			return err
		}

		d := ops.Decision{
			Pipeline: cmd.String("pipeline"),
			Stage:    cmd.String("stage"),
			Action:   cmd.String("action"),
			Approve:  approve,
			Summary:  cmd.String("summary"),
		}
		if err := client.Decide(ctx, d); err != nil {
			return err
		}

		verb := "rejected"
		if approve {
			verb = "approved"
		}
		a.log.WithField("pipeline", d.Pipeline).Debug("approval result sent")
		fmt.Fprintf(cmd.Root().Writer, "%s %s/%s\n", verb, d.Stage, d.Action)
		return nil
	}
}
