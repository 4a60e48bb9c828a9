package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newMetadataCommands(cli *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newVideoCommand(cli),
		newPlaylistCommand(cli),
		newChannelCommand(cli),
		newSearchCommand(cli),
	}
}

func newVideoCommand(cli *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "video <id|url>",
		Short: "Show metadata for a single video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			svc, err := cli.videoService()
			if err != nil {
				return err
			}
			video, err := svc.FetchVideo(ctx, args[0])
			if err != nil {
				return err
			}
			return emit(cmd, cli, video, func() string { return videoTable(video) })
		},
	}
}

func newPlaylistCommand(cli *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "playlist <id|url>",
		Short: "List the videos in a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			svc, err := cli.videoService()
			if err != nil {
				return err
			}
			playlist, err := svc.FetchPlaylist(ctx, args[0])
			if err != nil {
				return err
			}
			return emit(cmd, cli, playlist, func() string {
				return listingHeader(cmd, playlist.Title) + entryTable(playlist.Entries)
			})
		},
	}
}

func newChannelCommand(cli *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "channel <id|@handle|url>",
		Short: "List recent uploads of a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			svc, err := cli.videoService()
			if err != nil {
				return err
			}
			channel, err := svc.FetchChannel(ctx, args[0])
			if err != nil {
				return err
			}
			return emit(cmd, cli, channel, func() string {
				return listingHeader(cmd, channel.Name) + entryTable(channel.Entries)
			})
		},
	}
}

func newSearchCommand(cli *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for videos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			svc, err := cli.videoService()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			result, err := svc.Search(ctx, query, limit)
			if err != nil {
				return err
			}
			return emit(cmd, cli, result, func() string {
				return listingHeader(cmd, "Search: "+result.Query) + entryTable(result.Entries)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum results (default from config)")
	return cmd
}

func listingHeader(cmd *cobra.Command, title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	lines := renderSectionHeader(title, shouldColorize(cmd.OutOrStdout()))
	return strings.Join(lines, "\n") + "\n"
}
