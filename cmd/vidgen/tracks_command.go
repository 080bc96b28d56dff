package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vidgen/internal/tracks"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <audio-dir | audio files...>",
		Short: "Show the order tracks will be joined in",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordered, dir, err := resolveTracks(args)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(ordered))
			var total int64
			for i, track := range tracks.OrderTracks(ordered) {
				size := "?"
				if info, err := os.Stat(track.Path); err == nil {
					size = humanize.Bytes(uint64(info.Size()))
					total += info.Size()
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					track.Key.String(),
					filepath.Base(track.Path),
					size,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tracks in %s\n", dir)
			fmt.Fprintln(out, renderTable(tableSpec{
				Headers: []string{"#", "Key", "File", "Size"},
				Rows:    rows,
				Footer:  []string{"", "", fmt.Sprintf("%d tracks", len(rows)), humanize.Bytes(uint64(total))},
				Aligns:  []columnAlignment{alignRight, alignRight, alignLeft, alignRight},
			}))
			return nil
		},
	}
}
