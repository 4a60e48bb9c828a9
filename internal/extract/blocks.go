package extract

import (
	"regexp"
	"strings"
)

// fields holds the label values of one labelled block, keyed by upper-case label.
type fields map[string]string

func (f fields) get(label string) string {
	return strings.TrimSpace(f[label])
}

// blockFormat describes a labelled-block grammar such as
//
//	KEYWORD: latency
//	RELEVANCE: 0.8
//	FREQUENCY: 3
//
// The first label opens a record.
type blockFormat struct {
	labels   []string
	strict   *regexp.Regexp
	tolerant *regexp.Regexp
	lenient  *regexp.Regexp
}

func newBlockFormat(labels ...string) blockFormat {
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = regexp.QuoteMeta(label)
	}

	var strict strings.Builder
	strict.WriteString(`(?m)^`)
	for i, label := range quoted {
		if i > 0 {
			strict.WriteString(`\r?\n`)
		}
		strict.WriteString(label + `:[ \t]*([^\r\n]*?)[ \t]*`)
	}
	strict.WriteString(`\r?$`)

	alternation := strings.Join(quoted, "|")
	return blockFormat{
		labels:   labels,
		strict:   regexp.MustCompile(strict.String()),
		tolerant: regexp.MustCompile(`^\s*(` + alternation + `)\s*:\s*(.*?)\s*$`),
		lenient:  regexp.MustCompile(lenientPrefix + `(` + alternation + `)` + emphasis + `?[ \t]*[:=]` + emphasis + `?[ \t]*`),
	}
}

// strictBlocks requires every label, in order, on consecutive lines starting
// at column zero.
func (b blockFormat) strictBlocks(text string) []fields {
	matches := b.strict.FindAllStringSubmatch(text, -1)
	out := make([]fields, 0, len(matches))
	for _, match := range matches {
		record := make(fields, len(b.labels))
		for i, label := range b.labels {
			record[label] = match[i+1]
		}
		out = append(out, record)
	}
	return out
}

// tolerantBlocks accepts indentation, blank lines, CRLF and any field order,
// but labels must still be upper-case and one per line.
func (b blockFormat) tolerantBlocks(text string) []fields {
	var (
		out     []fields
		current fields
	)
	for _, line := range strings.Split(text, "\n") {
		match := b.tolerant.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		label, value := match[1], match[2]
		if label == b.labels[0] {
			if current != nil {
				out = append(out, current)
			}
			current = fields{label: value}
			continue
		}
		if current == nil {
			continue
		}
		if _, seen := current[label]; !seen {
			current[label] = value
		}
	}
	if current != nil {
		out = append(out, current)
	}
	return out
}

const emphasis = "(?:\\*\\*|__)"

// A lenient label opens a line (after an optional list marker), follows a
// separator, or is set off by markdown emphasis. A label word inside prose
// does not start a field.
const lenientPrefix = `(?im)(?:^[ \t]*(?:(?:[-*•]|\d+[.)])[ \t]+)?` + emphasis + `?|[,;|][ \t]*` + emphasis + `?|[ \t]+` + emphasis + `)`

var markdownNoise = strings.NewReplacer("**", "", "__", "", "`", "")

// lenientBlocks scans case-insensitively for "label:" or "label=" at a field
// boundary, ignoring markdown emphasis. Each value runs to the next label or
// the end of its line, without trailing separators.
func (b blockFormat) lenientBlocks(text string) []fields {
	locs := b.lenient.FindAllStringSubmatchIndex(text, -1)
	var (
		out     []fields
		current fields
	)
	for i, loc := range locs {
		label := strings.ToUpper(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := text[loc[1]:end]
		if idx := strings.IndexAny(value, "\r\n"); idx >= 0 {
			value = value[:idx]
		}
		value = strings.Trim(markdownNoise.Replace(value), " \t,;|")

		if label == b.labels[0] {
			if current != nil {
				out = append(out, current)
			}
			current = fields{label: value}
			continue
		}
		if current == nil {
			continue
		}
		if _, seen := current[label]; !seen {
			current[label] = value
		}
	}
	if current != nil {
		out = append(out, current)
	}
	return out
}

// blockTiers builds the strict, tolerant and lenient cascade for format.
// build converts one block into a candidate record; blocks it rejects are
// skipped.
func blockTiers[T any](format blockFormat, build func(fields) (T, bool)) []Tier[T] {
	parse := func(split func(string) []fields) func(string) []T {
		return func(text string) []T {
			blocks := split(text)
			out := make([]T, 0, len(blocks))
			for _, block := range blocks {
				if record, ok := build(block); ok {
					out = append(out, record)
				}
			}
			return out
		}
	}
	return []Tier[T]{
		{Name: "strict-blocks", Parse: parse(format.strictBlocks)},
		{Name: "tolerant-blocks", Parse: parse(format.tolerantBlocks)},
		{Name: "lenient-blocks", Parse: parse(format.lenientBlocks)},
	}
}
