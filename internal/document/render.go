package document

import "strings"

// Kind is the type of a rendered element.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindPageBreak
)

// StyleListBullet is the Word paragraph style used for "- " lines.
const StyleListBullet = "List Bullet"

// Element is one top-level block of the rendered document.
type Element struct {
	Kind  Kind
	Level int    // heading level, 0 for the title
	Style string // paragraph style, empty for Normal
	Text  string
}

// Labels are the fixed headings placed around the generated minutes.
type Labels struct {
	Title             string
	MinutesHeading    string
	TranscriptHeading string
}

// longest marker first, "### Foo" also starts with "## " otherwise
var headingMarkers = []struct {
	prefix string
	level  int
}{
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

const bulletMarker = "- "

// Lines splits minutes text into lines. Empty text has no lines. A trailing
// "\r" is dropped from each line, so "\r\n" input classifies like "\n" input
// and a blank CRLF line renders as an empty paragraph.
func Lines(minutes string) []string {
	if minutes == "" {
		return nil
	}
	lines := strings.Split(minutes, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Render lays out the minutes and the transcript. Every input line maps to
// exactly one element.
func Render(labels Labels, minutes, transcript string) []Element {
	lines := Lines(minutes)
	elements := make([]Element, 0, len(lines)+5)

	elements = append(elements,
		Element{Kind: KindHeading, Level: 0, Text: labels.Title},
		Element{Kind: KindHeading, Level: 1, Text: labels.MinutesHeading},
	)

	for _, line := range lines {
		elements = append(elements, classify(line))
	}

	elements = append(elements,
		Element{Kind: KindPageBreak},
		Element{Kind: KindHeading, Level: 1, Text: labels.TranscriptHeading},
		Element{Kind: KindParagraph, Text: transcript},
	)

	return elements
}

func classify(line string) Element {
	for _, m := range headingMarkers {
		if strings.HasPrefix(line, m.prefix) {
			return Element{Kind: KindHeading, Level: m.level, Text: strings.TrimPrefix(line, m.prefix)}
		}
	}
	if strings.HasPrefix(line, bulletMarker) {
		return Element{Kind: KindParagraph, Style: StyleListBullet, Text: line}
	}
	return Element{Kind: KindParagraph, Text: line}
}
