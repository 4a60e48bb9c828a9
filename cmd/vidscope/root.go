package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(d deps) (*cobra.Command, *commandContext) {
	var configFlag string
	var outputFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &outputFlag, &logLevelFlag, d)

	rootCmd := &cobra.Command{
		Use:           "vidscope",
		Short:         "Analyze video transcripts and fetch video metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if _, err := ctx.outputFormat(); err != nil {
				return err
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")

	for _, cmd := range newAnalysisCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range newMetadataCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd, ctx
}
