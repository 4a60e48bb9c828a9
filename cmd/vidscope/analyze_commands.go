package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"vidscope/internal/extract"
	"vidscope/internal/insights"
	"vidscope/internal/services"
)

// analysisInput carries the flags shared by the transcript commands.
type analysisInput struct {
	transcriptPath string
	videoID        string
	duration       string
	title          string
	description    string
}

func (in *analysisInput) bind(cmd *cobra.Command, withDuration, withTitle, withDescription bool) {
	cmd.Flags().StringVarP(&in.transcriptPath, "transcript", "t", "", "Transcript file (default: read stdin)")
	cmd.Flags().StringVar(&in.videoID, "video", "", "Video id or URL used to fill duration, title and description")
	if withDuration {
		cmd.Flags().StringVarP(&in.duration, "duration", "d", "", "Total duration (SS, MM:SS or HH:MM:SS)")
	}
	if withTitle {
		cmd.Flags().StringVar(&in.title, "title", "", "Media title")
	}
	if withDescription {
		cmd.Flags().StringVar(&in.description, "description", "", "Media description")
	}
}

// resolved is the transcript plus media context after flags and metadata
// have been merged. Explicit flags win over fetched metadata.
type resolved struct {
	transcript   string
	totalSeconds int
	title        string
	description  string
}

func (in *analysisInput) resolve(ctx context.Context, cmd *cobra.Command, cli *commandContext) (resolved, error) {
	var out resolved
	transcript, err := readTranscript(cmd, in.transcriptPath)
	if err != nil {
		return out, err
	}
	out.transcript = transcript
	out.title = strings.TrimSpace(in.title)
	out.description = strings.TrimSpace(in.description)

	if raw := strings.TrimSpace(in.duration); raw != "" {
		seconds, ok := extract.ParseTimestamp(raw)
		if !ok {
			return out, services.Invalid("invalid --duration %q (use SS, MM:SS or HH:MM:SS)", raw)
		}
		out.totalSeconds = seconds
	}

	if id := strings.TrimSpace(in.videoID); id != "" {
		svc, err := cli.videoService()
		if err != nil {
			return out, err
		}
		video, err := svc.FetchVideo(ctx, id)
		if err != nil {
			return out, err
		}
		if out.totalSeconds == 0 {
			out.totalSeconds = video.DurationSeconds
		}
		if out.title == "" {
			out.title = video.Title
		}
		if out.description == "" {
			out.description = video.Description
		}
	}
	return out, nil
}

func readTranscript(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path = strings.TrimSpace(path); path != "" && path != "-" {
		data, err = os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read transcript %s: %w", path, err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read transcript from stdin: %w", err)
		}
	}
	return string(data), nil
}

func newAnalysisCommands(cli *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newSummarizeCommand(cli),
		newChaptersCommand(cli),
		newKeywordsCommand(cli),
		newTopicsCommand(cli),
		newHighlightsCommand(cli),
		newAnalyzeCommand(cli),
	}
}

func newSummarizeCommand(cli *commandContext) *cobra.Command {
	var in analysisInput
	var maxWords int
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a transcript with key points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			input, err := in.resolve(ctx, cmd, cli)
			if err != nil {
				return err
			}
			analyzer, err := cli.analyzer(ctx)
			if err != nil {
				return err
			}
			summary, err := analyzer.Summarize(ctx, input.transcript, maxWords)
			if err != nil {
				return err
			}
			return emit(cmd, cli, summary, func() string { return summaryTable(summary) })
		},
	}
	in.bind(cmd, false, false, false)
	cmd.Flags().IntVar(&maxWords, "max-words", 0, "Summary length limit in words (default from config)")
	return cmd
}

func newChaptersCommand(cli *commandContext) *cobra.Command {
	var in analysisInput
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "Split a transcript into timestamped chapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			input, err := in.resolve(ctx, cmd, cli)
			if err != nil {
				return err
			}
			analyzer, err := cli.analyzer(ctx)
			if err != nil {
				return err
			}
			chapters, err := analyzer.Chapters(ctx, input.transcript, input.totalSeconds)
			if err != nil {
				return err
			}
			if err := emit(cmd, cli, chapters, func() string { return chapterTable(chapters) }); err != nil {
				return err
			}
			warnPlaceholderChapters(cmd, chapters)
			return nil
		},
	}
	in.bind(cmd, true, false, false)
	return cmd
}

func newKeywordsCommand(cli *commandContext) *cobra.Command {
	var in analysisInput
	var count int
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Extract ranked keywords from a transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			input, err := in.resolve(ctx, cmd, cli)
			if err != nil {
				return err
			}
			analyzer, err := cli.analyzer(ctx)
			if err != nil {
				return err
			}
			keywords, err := analyzer.Keywords(ctx, input.transcript, count)
			if err != nil {
				return err
			}
			return emit(cmd, cli, keywords, func() string { return keywordTable(keywords) })
		},
	}
	in.bind(cmd, false, false, false)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of keywords (default from config)")
	return cmd
}

func newTopicsCommand(cli *commandContext) *cobra.Command {
	var in analysisInput
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Identify the topics a transcript covers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			input, err := in.resolve(ctx, cmd, cli)
			if err != nil {
				return err
			}
			analyzer, err := cli.analyzer(ctx)
			if err != nil {
				return err
			}
			topics, err := analyzer.Topics(ctx, input.transcript, input.title, input.description)
			if err != nil {
				return err
			}
			return emit(cmd, cli, topics, func() string { return topicTable(topics) })
		},
	}
	in.bind(cmd, false, true, true)
	return cmd
}

func newHighlightsCommand(cli *commandContext) *cobra.Command {
	var in analysisInput
	var count int
	cmd := &cobra.Command{
		Use:   "highlights",
		Short: "Find the most noteworthy moments in a transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			input, err := in.resolve(ctx, cmd, cli)
			if err != nil {
				return err
			}
			analyzer, err := cli.analyzer(ctx)
			if err != nil {
				return err
			}
			highlights, err := analyzer.Highlights(ctx, input.transcript, input.totalSeconds, input.title, count)
			if err != nil {
				return err
			}
			return emit(cmd, cli, highlights, func() string { return highlightTable(highlights) })
		},
	}
	in.bind(cmd, true, true, false)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of highlights (default from config)")
	return cmd
}

// Report bundles every analysis of one transcript.
type Report struct {
	Title      string              `json:"title,omitempty" yaml:"title,omitempty"`
	Duration   string              `json:"duration" yaml:"duration"`
	Summary    extract.Summary     `json:"summary" yaml:"summary"`
	Chapters   []extract.Chapter   `json:"chapters" yaml:"chapters"`
	Keywords   []extract.Keyword   `json:"keywords" yaml:"keywords"`
	Topics     []extract.Topic     `json:"topics" yaml:"topics"`
	Highlights []extract.Highlight `json:"highlights" yaml:"highlights"`
}

func newAnalyzeCommand(cli *commandContext) *cobra.Command {
	var in analysisInput
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run every analysis on a transcript concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.requestContext(cmd)
			input, err := in.resolve(ctx, cmd, cli)
			if err != nil {
				return err
			}
			analyzer, err := cli.analyzer(ctx)
			if err != nil {
				return err
			}
			report, err := runReport(ctx, analyzer, input)
			if err != nil {
				return err
			}
			if err := emit(cmd, cli, report, func() string { return reportTable(report, shouldColorize(cmd.OutOrStdout())) }); err != nil {
				return err
			}
			warnPlaceholderChapters(cmd, report.Chapters)
			return nil
		},
	}
	in.bind(cmd, true, true, true)
	return cmd
}

// runReport fans the five analyses out; the first failure cancels the rest.
func runReport(ctx context.Context, analyzer *insights.Analyzer, input resolved) (Report, error) {
	if input.totalSeconds <= 0 {
		return Report{}, services.Invalid("total duration must be positive, got %d (pass --duration or --video)", input.totalSeconds)
	}
	report := Report{Title: input.title, Duration: extract.FormatTimestamp(input.totalSeconds)}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.Summary, err = analyzer.Summarize(gctx, input.transcript, 0)
		return err
	})
	g.Go(func() error {
		var err error
		report.Chapters, err = analyzer.Chapters(gctx, input.transcript, input.totalSeconds)
		return err
	})
	g.Go(func() error {
		var err error
		report.Keywords, err = analyzer.Keywords(gctx, input.transcript, 0)
		return err
	})
	g.Go(func() error {
		var err error
		report.Topics, err = analyzer.Topics(gctx, input.transcript, input.title, input.description)
		return err
	})
	g.Go(func() error {
		var err error
		report.Highlights, err = analyzer.Highlights(gctx, input.transcript, input.totalSeconds, input.title, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return report, nil
}

func reportTable(r Report, colorize bool) string {
	var b strings.Builder
	title := "Analysis"
	if r.Title != "" {
		title = r.Title
	}
	for _, line := range renderSectionHeader(fmt.Sprintf("%s (%s)", title, r.Duration), colorize) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	sections := []struct {
		name string
		body string
	}{
		{"Summary", summaryTable(r.Summary)},
		{"Chapters", chapterTable(r.Chapters)},
		{"Keywords", keywordTable(r.Keywords)},
		{"Topics", topicTable(r.Topics)},
		{"Highlights", highlightTable(r.Highlights)},
	}
	for _, section := range sections {
		b.WriteString("\n")
		for _, line := range renderSectionHeader(section.name, colorize) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString(section.body)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// warnPlaceholderChapters tells the user when every chapter was synthesized.
func warnPlaceholderChapters(cmd *cobra.Command, chapters []extract.Chapter) {
	if len(chapters) == 0 {
		return
	}
	for _, c := range chapters {
		if !c.AutoGenerated {
			return
		}
	}
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, renderStatusLine("Chapters", statusWarn, "model output unusable; evenly spaced placeholders returned", shouldColorize(w)))
}
