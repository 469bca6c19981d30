package main

import (
	"context"
	"fmt"

	"github.com/30Piraten/codepipeline/buildspec"
	"github.com/30Piraten/codepipeline/config"
	"github.com/urfave/cli/v3"
)

func lintBuildspecCmd() *cli.Command {
	return &cli.Command{
		Name:      "lint-buildspec",
		Usage:     "Check a CodeBuild buildspec file",
		ArgsUsage: "[path]",
		Action:    runLintBuildspec,
	}
}

func runLintBuildspec(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		path = config.Defaults[config.KeyBuildspecPath]
	}

	spec, err := buildspec.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "%s: ok (version %s, %d commands)\n", path, spec.Version, len(spec.Commands()))
	return nil
}
