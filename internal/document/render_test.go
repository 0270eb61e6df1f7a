package document

import (
	"reflect"
	"strings"
	"testing"
)

var testLabels = Labels{
	Title:             "AI自動生成議事録",
	MinutesHeading:    "生成された議事録",
	TranscriptHeading: "文字起こし全文",
}

func TestRenderClassifiesLines(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Element
	}{
		{"level 3 heading", "### Foo", Element{Kind: KindHeading, Level: 3, Text: "Foo"}},
		{"level 2 heading", "## Foo", Element{Kind: KindHeading, Level: 2, Text: "Foo"}},
		{"level 1 heading", "# Foo", Element{Kind: KindHeading, Level: 1, Text: "Foo"}},
		{"bullet keeps marker", "- Item", Element{Kind: KindParagraph, Style: StyleListBullet, Text: "- Item"}},
		{"checkbox bullet", "- [ ] タスク1", Element{Kind: KindParagraph, Style: StyleListBullet, Text: "- [ ] タスク1"}},
		{"plain text", "Just text", Element{Kind: KindParagraph, Text: "Just text"}},
		{"blank line", "", Element{Kind: KindParagraph, Text: ""}},
		{"whitespace only", "   ", Element{Kind: KindParagraph, Text: "   "}},
		{"four hashes fall through", "#### Deep", Element{Kind: KindParagraph, Text: "#### Deep"}},
		{"star bullet falls through", "* Item", Element{Kind: KindParagraph, Text: "* Item"}},
		{"hash without space", "#Tag", Element{Kind: KindParagraph, Text: "#Tag"}},
		{"dash without space", "-5 degrees", Element{Kind: KindParagraph, Text: "-5 degrees"}},
		{"indented heading is plain", "  # Foo", Element{Kind: KindParagraph, Text: "  # Foo"}},
		{"marker stripped once", "## ## twice", Element{Kind: KindHeading, Level: 2, Text: "## twice"}},
		{"horizontal rule", "---", Element{Kind: KindParagraph, Text: "---"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(testLabels, tt.line, "transcript")
			if len(got) != 6 {
				t.Fatalf("len(Render()) = %d, want 6", len(got))
			}
			if got[2] != tt.want {
				t.Errorf("element = %+v, want %+v", got[2], tt.want)
			}
		})
	}
}

func TestRenderLayout(t *testing.T) {
	minutes := "# 議事録\n\n## 1. 会議の要約\n予算の確認\n- 決定事項1\n### 補足"
	transcript := "一行目\n二行目"

	got := Render(testLabels, minutes, transcript)
	want := []Element{
		{Kind: KindHeading, Level: 0, Text: "AI自動生成議事録"},
		{Kind: KindHeading, Level: 1, Text: "生成された議事録"},
		{Kind: KindHeading, Level: 1, Text: "議事録"},
		{Kind: KindParagraph, Text: ""},
		{Kind: KindHeading, Level: 2, Text: "1. 会議の要約"},
		{Kind: KindParagraph, Text: "予算の確認"},
		{Kind: KindParagraph, Style: StyleListBullet, Text: "- 決定事項1"},
		{Kind: KindHeading, Level: 3, Text: "補足"},
		{Kind: KindPageBreak},
		{Kind: KindHeading, Level: 1, Text: "文字起こし全文"},
		{Kind: KindParagraph, Text: "一行目\n二行目"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Render() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestRenderElementCount(t *testing.T) {
	inputs := []string{
		"",
		"one line",
		"a\nb\nc",
		"# h\n\n\n- x\n",
		strings.Repeat("- item\n", 40),
	}

	for _, minutes := range inputs {
		got := Render(testLabels, minutes, "t")
		n := len(Lines(minutes))
		// title + minutes heading + lines + page break + transcript heading, then the transcript
		if len(got) != n+4+1 {
			t.Errorf("Render(%q) has %d elements, want %d", minutes, len(got), n+5)
		}
		last := got[len(got)-1]
		if last.Kind != KindParagraph || last.Text != "t" {
			t.Errorf("last element = %+v, want transcript paragraph", last)
		}
	}
}

func TestRenderEmptyMinutes(t *testing.T) {
	got := Render(testLabels, "", "全文")
	want := []Element{
		{Kind: KindHeading, Level: 0, Text: "AI自動生成議事録"},
		{Kind: KindHeading, Level: 1, Text: "生成された議事録"},
		{Kind: KindPageBreak},
		{Kind: KindHeading, Level: 1, Text: "文字起こし全文"},
		{Kind: KindParagraph, Text: "全文"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Render() = %+v, want %+v", got, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	minutes := "# A\n## B\n- c\nd"
	first := Render(testLabels, minutes, "x")
	second := Render(testLabels, minutes, "x")
	if !reflect.DeepEqual(first, second) {
		t.Error("Render() is not deterministic")
	}
}

func TestLinesStripsCarriageReturn(t *testing.T) {
	got := Lines("# A\r\n- b\r\n")
	want := []string{"# A", "- b", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}
