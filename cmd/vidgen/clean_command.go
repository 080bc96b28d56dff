package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vidgen/internal/fileutil"
	"vidgen/internal/pipeline"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove scratch folders left behind by interrupted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report, err := fileutil.CleanStale(cfg.ScratchDir(), pipeline.ScratchPrefix, olderThan, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range report.Removed {
				fmt.Fprintf(out, "Removed %s\n", path)
			}
			for _, path := range report.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Could not remove %s\n", path)
			}
			if len(report.Removed) == 0 {
				fmt.Fprintln(out, "No stale scratch folders")
			} else {
				fmt.Fprintf(out, "Freed %s\n", humanize.Bytes(uint64(report.Bytes)))
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d scratch folders could not be removed", len(report.Failed))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", time.Hour, "Only remove folders older than this (0 removes all)")
	return cmd
}
