package parser

import "strings"

// cleanup is the §4.8 pre-parse normalization. It returns the document's
// lines with CRLF/CR endings folded to LF, a trailing line re-added if the
// text didn't end with one, and any leading `%YAML` directive, run of
// `#`-comment lines, and `---`/`...` stream markers stripped — together
// with the offset that must be added back when reporting line numbers so
// diagnostics match the ORIGINAL, pre-strip source.
func cleanup(text string) ([]string, int) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	offset := 0

	if len(lines) > 0 && strings.HasPrefix(lines[0], "%YAML") {
		lines = lines[1:]
		offset++
	}

	for len(lines) > 0 && strings.HasPrefix(strings.TrimLeft(lines[0], " \t"), "#") {
		lines = lines[1:]
		offset++
	}

	if len(lines) > 0 && strings.TrimRight(lines[0], " \t") == "---" {
		lines = lines[1:]
		offset++
		if len(lines) > 0 && strings.TrimRight(lines[len(lines)-1], " \t") == "..." {
			lines = lines[:len(lines)-1]
		}
	}

	return lines, offset
}
