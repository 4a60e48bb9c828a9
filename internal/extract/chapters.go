package extract

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"
)

var chapterBlocks = newBlockFormat("CHAPTER", "TITLE", "DESCRIPTION")

// chapterLine matches list-style chapters such as "00:00 - Intro",
// "[01:30] Setup: installing tools" or "3. 1:02:00 | Wrap up".
var chapterLine = regexp.MustCompile(`^\s*(?:[-*•]\s*|\d+[.)]\s+)?[\[(]?(\d{1,2}(?::\d{1,2}){1,2})[\])]?\s*(?:[-–—:|]\s*)?(.+?)\s*$`)

const (
	fallbackChapterSpan = 300
	minFallbackChapters = 5
	maxFallbackChapters = 15
)

// ChapterSpec returns the chapter cascade. Chapters whose start falls outside
// [0, totalSeconds] are discarded, survivors are ordered by start time, and a
// total failure synthesises evenly spaced placeholder chapters.
func ChapterSpec(totalSeconds int) ContentSpec[Chapter] {
	tiers := blockTiers(chapterBlocks, buildChapter)
	tiers = append(tiers, Tier[Chapter]{Name: "timestamp-lines", Parse: parseChapterLines})

	return ContentSpec[Chapter]{
		Name:  "chapters",
		Tiers: tiers,
		Validate: func(c Chapter) (Chapter, bool) {
			return validateChapter(c, totalSeconds)
		},
		Compare: func(a, b Chapter) int {
			return cmp.Compare(a.StartSeconds, b.StartSeconds)
		},
		Fallback: func() []Chapter {
			return FallbackChapters(totalSeconds)
		},
	}
}

// Chapters extracts chapters from generated text.
func Chapters(text string, totalSeconds int) Result[Chapter] {
	return Run(text, ChapterSpec(totalSeconds))
}

func buildChapter(f fields) (Chapter, bool) {
	start, ok := ParseTimestamp(f.get("CHAPTER"))
	if !ok {
		return Chapter{}, false
	}
	return Chapter{
		StartSeconds: start,
		Title:        f.get("TITLE"),
		Description:  f.get("DESCRIPTION"),
	}, true
}

func parseChapterLines(text string) []Chapter {
	var out []Chapter
	for _, line := range strings.Split(markdownNoise.Replace(text), "\n") {
		match := chapterLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		start, ok := ParseTimestamp(match[1])
		if !ok {
			continue
		}
		title, description := match[2], ""
		if idx := strings.Index(title, ": "); idx > 0 {
			title, description = title[:idx], title[idx+2:]
		}
		out = append(out, Chapter{
			StartSeconds: start,
			Title:        strings.TrimSpace(title),
			Description:  strings.TrimSpace(description),
		})
	}
	return out
}

func validateChapter(c Chapter, totalSeconds int) (Chapter, bool) {
	c.Title = strings.Trim(strings.TrimSpace(c.Title), `"`)
	if c.Title == "" {
		return c, false
	}
	if c.StartSeconds < 0 || (totalSeconds > 0 && c.StartSeconds > totalSeconds) {
		return c, false
	}
	c.Timestamp = FormatTimestamp(c.StartSeconds)
	return c, true
}

// FallbackChapters returns clamp(total/300, 5, 15) placeholder chapters evenly
// spaced across [0, totalSeconds). A non-positive total yields none.
func FallbackChapters(totalSeconds int) []Chapter {
	if totalSeconds <= 0 {
		return []Chapter{}
	}
	count := totalSeconds / fallbackChapterSpan
	count = max(minFallbackChapters, min(maxFallbackChapters, count))

	chapters := make([]Chapter, count)
	for i := range chapters {
		start := i * totalSeconds / count
		chapters[i] = Chapter{
			Timestamp:     FormatTimestamp(start),
			StartSeconds:  start,
			Title:         fmt.Sprintf("Part %d", i+1),
			Description:   fmt.Sprintf("Section starting at %s", FormatTimestamp(start)),
			AutoGenerated: true,
		}
	}
	return chapters
}
