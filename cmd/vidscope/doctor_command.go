package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vidscope/internal/preflight"
)

func newDoctorCommand(cli *commandContext) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that yt-dlp and the text generator are ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			cfg := cli.configValue()
			if cfg == nil {
				return fmt.Errorf("configuration not loaded")
			}
			var opts preflight.Options
			if !offline && cfg.ValidateGenerator() == nil {
				gen, err := cli.deps.generator(ctx, cfg)
				if err != nil {
					return err
				}
				opts.Generator = gen
			}
			results := preflight.RunAll(ctx, cfg, opts)

			format, err := cli.outputFormat()
			if err != nil {
				return err
			}
			if format != "table" {
				if err := emit(cmd, cli, results, nil); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("vidscope doctor", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, r := range results {
					fmt.Fprintln(out, renderStatusLine(r.Name, resultKind(r), r.Detail, colorize))
				}
			}
			if preflight.Failed(results) {
				return errors.New("doctor: one or more required checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the generator reachability request")
	return cmd
}

func resultKind(r preflight.Result) statusKind {
	switch {
	case r.Passed:
		return statusOK
	case r.Optional:
		return statusWarn
	default:
		return statusError
	}
}
