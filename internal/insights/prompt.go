package insights

import (
	"fmt"
	"strings"
)

const summaryPromptTemplate = `You summarise video transcripts.

Write a summary of at most %d words, then list the key points.
Respond using exactly this layout and nothing else:

SUMMARY:
<summary paragraph>

KEY POINTS:
- <first key point>
- <second key point>

Transcript:
%s`

const chapterPromptTemplate = `You split video transcripts into chapters.

The video is %s long. Every chapter must start between 00:00 and %s, and the
first chapter must start at 00:00. Use MM:SS for times under an hour and
HH:MM:SS otherwise.

Respond with one block per chapter, separated by a blank line, using exactly
these labels:

CHAPTER: <start time>
TITLE: <short title>
DESCRIPTION: <one sentence>

Transcript:
%s`

const keywordPromptTemplate = `You extract keywords from video transcripts.

Return the %d most relevant keywords or key phrases. Respond ONLY with a JSON
array, most relevant first:
[{"keyword": "<term>", "relevance": <0.0-1.0>, "frequency": <times mentioned>}]

If you cannot produce JSON, use one block per keyword instead:

KEYWORD: <term>
RELEVANCE: <0.0-1.0>
FREQUENCY: <times mentioned>

Transcript:
%s`

const topicPromptTemplate = `You identify the topics a video covers.

Title: %s
Description: %s

Respond with one block per topic, separated by a blank line, using exactly
these labels. Confidence is a number between 0.0 and 1.0.

TOPIC: <topic name>
CONFIDENCE: <0.0-1.0>
CATEGORY: <broad category, e.g. Technology, Science, Business>

Transcript:
%s`

const highlightPromptTemplate = `You pick the most engaging moments of a video.

Title: %s
The video is %s long. Pick up to %d highlights. Each highlight must start at
or after 00:00 and end before %s. Duration is in seconds. Score is a number
between 0.0 and 1.0.

Respond with one block per highlight, separated by a blank line, using
exactly these labels:

HIGHLIGHT: <start time MM:SS or HH:MM:SS>
DURATION: <seconds>
DESCRIPTION: <what happens>
REASON: <why it stands out>
SCORE: <0.0-1.0>

Transcript:
%s`

// SummaryPrompt builds the summarisation prompt.
func SummaryPrompt(transcript string, maxWords int) string {
	return fmt.Sprintf(summaryPromptTemplate, maxWords, transcript)
}

// ChapterPrompt builds the chapter prompt; length is a formatted timestamp.
func ChapterPrompt(transcript, length string) string {
	return fmt.Sprintf(chapterPromptTemplate, length, length, transcript)
}

// KeywordPrompt builds the keyword prompt.
func KeywordPrompt(transcript string, count int) string {
	return fmt.Sprintf(keywordPromptTemplate, count, transcript)
}

// TopicPrompt builds the topic prompt.
func TopicPrompt(transcript, title, description string) string {
	return fmt.Sprintf(topicPromptTemplate, orUnknown(title), orUnknown(description), transcript)
}

// HighlightPrompt builds the highlight prompt; length is a formatted timestamp.
func HighlightPrompt(transcript, title, length string, count int) string {
	return fmt.Sprintf(highlightPromptTemplate, orUnknown(title), length, count, length, transcript)
}

func orUnknown(value string) string {
	if value = strings.TrimSpace(value); value == "" {
		return "(not provided)"
	}
	return value
}
