package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vidgen/internal/deps"
	"vidgen/internal/encoding"
	"vidgen/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check ffmpeg, encoders and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := isTerminal(out)

			lines := renderSectionHeader("Configuration", colorize)
			if ctx.configPath != "" {
				lines = append(lines, renderStatusLine("Config file", statusInfo, ctx.configPath, colorize))
			} else {
				lines = append(lines, renderStatusLine("Config file", statusInfo, "defaults", colorize))
			}
			tier, _ := encoding.ParseTier(cfg.Encoding.Quality)
			lines = append(lines,
				renderStatusLine("Quality", statusInfo, tier.String(), colorize),
				renderStatusLine("Hardware encoding", statusInfo, yesNo(cfg.Encoding.UseHardware), colorize),
				renderStatusLine("Canvas", statusInfo, fmt.Sprintf("%dx%d %s", cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Background), colorize),
			)

			ffmpegStatus := deps.ResolveFFmpeg(cfg.Paths.FFmpegPath)
			lines = append(lines, renderStatusLine("FFmpeg lookup", statusInfo, ffmpegStatus.Summary(), colorize))

			results := preflight.RunAll(cmd.Context(), cfg, ffmpegStatus)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Environment", colorize)...)
			for _, result := range results {
				lines = append(lines, renderStatusLine(result.Name, checkKind(result), result.Detail, colorize))
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			if preflight.AnyFailed(results) {
				return errors.New("one or more required checks failed")
			}
			return nil
		},
	}
}
