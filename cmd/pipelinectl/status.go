package main

import (
	"context"
	"io"
	"time"

	"github.com/30Piraten/codepipeline/ops"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

func (a *app) statusCmd() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the latest status of every stage and action",
		Flags:  []cli.Flag{pipelineFlag()},
		Action: a.runStatus,
	}
}

func (a *app) runStatus(ctx context.Context, cmd *cli.Command) error {
	client, err := a.client(ctx, cmd)
	if err != nil {
		return err
	}

	statuses, err := client.State(ctx, cmd.String("pipeline"))
	if err != nil {
		return err
	}

	renderStatus(cmd.Root().Writer, statuses)
	return nil
}

func renderStatus(w io.Writer, statuses []ops.ActionStatus) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stage", "Action", "Status", "Last change", "Details"})

	for _, st := range statuses {
		status := st.Status
		if status == "" {
			status = "-"
		}
		details := st.Summary
		if st.Error != "" {
			details = st.Error
		}
		if st.Pending() {
			details = "waiting for approval"
		}
		t.AppendRow(table.Row{st.Stage, st.Action, status, formatTime(st.LastChange), details})
	}
	t.Render()
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format(time.RFC3339)
}
