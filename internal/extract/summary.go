package extract

import (
	"regexp"
	"strings"

	"vidscope/internal/textutil"
)

var (
	summaryHeading  = regexp.MustCompile(`(?im)^[ \t#>]*summary[ \t]*(?::|$)`)
	keyPointHeading = regexp.MustCompile(`(?im)^[ \t#>]*key[ \t_-]*points?[ \t]*:?[ \t]*$`)
	bulletPrefix    = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
)

// ParseSummary splits generated text into the summary paragraph and its key
// points. The text may carry a "SUMMARY:" heading and a "KEY POINTS:" heading
// followed by bullets ("-", "*", "•", "1.", "1)"). When no key points are
// found the summary itself becomes the single key point. WordCount is the
// whitespace token count of the summary.
func ParseSummary(text string) Summary {
	text = markdownNoise.Replace(strings.ReplaceAll(text, "\r\n", "\n"))

	body, points := text, ""
	if loc := keyPointHeading.FindStringIndex(text); loc != nil {
		body, points = text[:loc[0]], text[loc[1]:]
	}
	if loc := summaryHeading.FindStringIndex(body); loc != nil {
		body = body[loc[1]:]
	}

	summary := textutil.CollapseSpace(body)
	keyPoints := parseBullets(points)
	if len(keyPoints) == 0 && summary != "" {
		keyPoints = []string{summary}
	}
	return Summary{
		Summary:   summary,
		KeyPoints: keyPoints,
		WordCount: textutil.WordCount(summary),
	}
}

func parseBullets(block string) []string {
	points := make([]string, 0)
	for _, line := range strings.Split(block, "\n") {
		loc := bulletPrefix.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if point := textutil.CollapseSpace(line[loc[1]:]); point != "" {
			points = append(points, point)
		}
	}
	return points
}
