package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vidscope/internal/extract"
	"vidscope/internal/videos"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// emit writes v in the selected structured format, or calls table for the
// human-readable rendering.
func emit(cmd *cobra.Command, ctx *commandContext, v any, table func() string) error {
	format, err := ctx.outputFormat()
	if err != nil {
		return err
	}
	switch format {
	case "json":
		return writeJSON(cmd, v)
	case "yaml":
		return writeYAML(cmd, v)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), table())
		return nil
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func summaryTable(s extract.Summary) string {
	var b strings.Builder
	b.WriteString(s.Summary)
	b.WriteString("\n")
	if len(s.KeyPoints) > 0 {
		b.WriteString("\nKey points:\n")
		for _, point := range s.KeyPoints {
			b.WriteString("  - ")
			b.WriteString(point)
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "\n(%d words)", s.WordCount)
	return b.String()
}

func chapterTable(chapters []extract.Chapter) string {
	rows := make([][]string, 0, len(chapters))
	for _, c := range chapters {
		rows = append(rows, []string{c.Timestamp, c.Title, c.Description})
	}
	return renderTable([]string{"Start", "Title", "Description"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft})
}

func keywordTable(keywords []extract.Keyword) string {
	rows := make([][]string, 0, len(keywords))
	for _, k := range keywords {
		rows = append(rows, []string{k.Keyword, formatScore(k.Relevance), strconv.Itoa(k.Frequency)})
	}
	return renderTable([]string{"Keyword", "Relevance", "Frequency"}, rows, []columnAlignment{alignLeft, alignRight, alignRight})
}

func topicTable(topics []extract.Topic) string {
	rows := make([][]string, 0, len(topics))
	for _, t := range topics {
		rows = append(rows, []string{t.Topic, t.Category, formatScore(t.Confidence)})
	}
	return renderTable([]string{"Topic", "Category", "Confidence"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}

func highlightTable(highlights []extract.Highlight) string {
	rows := make([][]string, 0, len(highlights))
	for _, h := range highlights {
		rows = append(rows, []string{h.Timestamp, h.Duration, formatScore(h.Score), h.Description, h.Reason})
	}
	return renderTable(
		[]string{"Start", "Length", "Score", "Description", "Reason"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func videoTable(v videos.Video) string {
	rows := [][]string{
		{"ID", v.ID},
		{"Title", v.Title},
		{"Channel", v.Channel},
		{"Duration", extract.FormatTimestamp(v.DurationSeconds)},
		{"Uploaded", v.UploadDate},
		{"Views", strconv.FormatInt(v.ViewCount, 10)},
		{"Likes", strconv.FormatInt(v.LikeCount, 10)},
		{"Live", strconv.FormatBool(v.IsLive)},
		{"Tags", strings.Join(v.Tags, ", ")},
	}
	return renderTable([]string{"Field", "Value"}, rows, nil)
}

func entryTable(entries []videos.VideoRef) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		duration := ""
		if e.DurationSeconds > 0 {
			duration = extract.FormatTimestamp(e.DurationSeconds)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), e.ID, e.Title, duration, e.Channel})
	}
	return renderTable(
		[]string{"#", "ID", "Title", "Duration", "Channel"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
