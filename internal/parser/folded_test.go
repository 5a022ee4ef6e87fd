package parser

import "testing"

func TestReadFoldedLiteralClip(t *testing.T) {
	got, err := readFoldedLines("|", []string{"line one", "line two"})
	if err != nil {
		t.Fatal(err)
	}
	want := "line one\nline two\n"
	if got != want {
		t.Errorf("readFoldedLines = %q, want %q", got, want)
	}
}

func TestReadFoldedLiteralStrip(t *testing.T) {
	got, err := readFoldedLines("|-", []string{"line one", "line two"})
	if err != nil {
		t.Fatal(err)
	}
	want := "line one\nline two"
	if got != want {
		t.Errorf("readFoldedLines = %q, want %q", got, want)
	}
}

func TestReadFoldedLiteralKeep(t *testing.T) {
	got, err := readFoldedLines("|+", []string{"line one", "", ""})
	if err != nil {
		t.Fatal(err)
	}
	want := "line one\n\n\n"
	if got != want {
		t.Errorf("readFoldedLines = %q, want %q", got, want)
	}
}

func TestReadFoldedStyleJoinsWithSpace(t *testing.T) {
	got, err := readFoldedLines(">", []string{"line one", "line two"})
	if err != nil {
		t.Fatal(err)
	}
	want := "line one line two\n"
	if got != want {
		t.Errorf("readFoldedLines = %q, want %q", got, want)
	}
}

func TestReadFoldedStylePreservesBlankLineAsNewline(t *testing.T) {
	got, err := readFoldedLines(">", []string{"para one", "", "para two"})
	if err != nil {
		t.Fatal(err)
	}
	want := "para one\n\npara two\n"
	if got != want {
		t.Errorf("readFoldedLines = %q, want %q", got, want)
	}
}

func TestReadFoldedStyleExtraIndentForcesNewline(t *testing.T) {
	got, err := readFoldedLines(">", []string{"normal", "  extra indented", "normal again"})
	if err != nil {
		t.Fatal(err)
	}
	want := "normal\n  extra indented\nnormal again\n"
	if got != want {
		t.Errorf("readFoldedLines = %q, want %q", got, want)
	}
}

func TestReadFoldedExplicitIndentDigit(t *testing.T) {
	// Without the digit, textIndent would be taken from the first line (2)
	// and both leading spaces would be stripped; with "|1" only one is
	// stripped, so one leading space is kept.
	got, err := readFoldedLines("|1", []string{"  kept leading space"})
	if err != nil {
		t.Fatal(err)
	}
	want := " kept leading space\n"
	if got != want {
		t.Errorf("readFoldedLines = %q, want %q", got, want)
	}
}

func TestReadFoldedChompingLaw(t *testing.T) {
	lines := []string{"text", "", ""}
	strip, err := readFoldedLines("|-", lines)
	if err != nil {
		t.Fatal(err)
	}
	clip, err := readFoldedLines("|", lines)
	if err != nil {
		t.Fatal(err)
	}
	keep, err := readFoldedLines("|+", lines)
	if err != nil {
		t.Fatal(err)
	}
	if len(strip) >= len(clip) || len(clip) >= len(keep) {
		t.Errorf("chomping law violated: strip=%q clip=%q keep=%q", strip, clip, keep)
	}
}

func TestParseFoldedHeaderDigitAndChompEitherOrder(t *testing.T) {
	style, chomp, indent, err := parseFoldedHeader("|2-")
	if err != nil {
		t.Fatal(err)
	}
	if style != '|' || chomp != '-' || indent != 2 {
		t.Errorf("got style=%c chomp=%c indent=%d", style, chomp, indent)
	}
	style, chomp, indent, err = parseFoldedHeader("|-2")
	if err != nil {
		t.Fatal(err)
	}
	if style != '|' || chomp != '-' || indent != 2 {
		t.Errorf("got style=%c chomp=%c indent=%d", style, chomp, indent)
	}
}

func TestParseFoldedHeaderRejectsUnknownIndicator(t *testing.T) {
	_, _, _, err := parseFoldedHeader("|x")
	if err == nil {
		t.Fatal("expected error for unrecognized indicator")
	}
}
