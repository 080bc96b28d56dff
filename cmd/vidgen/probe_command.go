package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vidgen/internal/deps"
	"vidgen/internal/media/ffmpeg"
	"vidgen/internal/services"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <audio-dir | audio files...>",
		Short: "Measure track durations with ffmpeg",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ordered, _, err := resolveTracks(args)
			if err != nil {
				return err
			}
			status := deps.ResolveFFmpeg(cfg.Paths.FFmpegPath)
			if !status.Available {
				return services.Wrap(services.ErrEnvironment, "probe", "resolve ffmpeg", status.Detail, nil)
			}

			client := ffmpeg.New(status.Command)
			rows := make([][]string, 0, len(ordered))
			var total float64
			known := true
			for i, track := range ordered {
				seconds, ok, err := client.ProbeTrack(cmd.Context(), track)
				if err != nil && !ok {
					return err
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				}
				length := "unknown"
				if ok {
					length = formatSeconds(seconds)
					total += seconds
				} else {
					known = false
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), filepath.Base(track), length})
			}

			footer := formatSeconds(total)
			if !known {
				footer += " (incomplete)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
				Headers: []string{"#", "File", "Duration"},
				Rows:    rows,
				Footer:  []string{"", "Total", footer},
				Aligns:  []columnAlignment{alignRight, alignLeft, alignRight},
			}))
			return nil
		},
	}
}

func formatSeconds(seconds float64) string {
	return time.Duration(seconds * float64(time.Second)).Round(10 * time.Millisecond).String()
}
