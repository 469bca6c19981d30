package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

func (a *app) artifactsCmd() *cli.Command {
	return &cli.Command{
		Name:   "artifacts",
		Usage:  "List artifact revisions stored for the pipeline",
		Flags:  []cli.Flag{pipelineFlag()},
		Action: a.runArtifacts,
	}
}

func (a *app) runArtifacts(ctx context.Context, cmd *cli.Command) error {
	client, err := a.client(ctx, cmd)
	if err != nil {
		return err
	}

	bucket, objects, err := client.Artifacts(ctx, cmd.String("pipeline"))
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintf(w, "bucket: %s\n", bucket)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Size", "Last modified"})
	var total int64
	for _, obj := range objects {
		t.AppendRow(table.Row{obj.Key, obj.Size, formatTime(obj.LastModified)})
		total += obj.Size
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d objects", len(objects)), total, ""})
	t.Render()
	return nil
}
