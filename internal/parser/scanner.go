package parser

import "strings"

// lineScanner is the Block Scanner (SPEC_FULL.md §4.3): a cursor over a
// list of logical lines plus an offset used only for error-message line
// numbers. cursor == -1 means "before the first line"; cursor == len(lines)
// means "past the last line" (EOF).
type lineScanner struct {
	lines  []string
	cursor int
	offset int
}

func newLineScanner(lines []string, offset int) *lineScanner {
	return &lineScanner{lines: lines, cursor: -1, offset: offset}
}

// advance moves the cursor forward one line. It returns false (leaving the
// cursor at len(lines), i.e. EOF) when there is no next line.
func (s *lineScanner) advance() bool {
	if s.cursor+1 >= len(s.lines) {
		s.cursor = len(s.lines)
		return false
	}
	s.cursor++
	return true
}

// retreat moves the cursor back one line, used to push back a line that a
// lookahead determined doesn't belong to the construct being parsed.
func (s *lineScanner) retreat() {
	if s.cursor > -1 {
		s.cursor--
	}
}

func (s *lineScanner) eof() bool {
	return s.cursor >= len(s.lines)
}

// current returns the line at the cursor. Callers must check eof() first.
func (s *lineScanner) current() string {
	return s.lines[s.cursor]
}

// lineNumber is the 1-based line number in the ORIGINAL source, for error
// messages: cursor + offset + 1 per SPEC_FULL.md §7.
func (s *lineScanner) lineNumber() int {
	return s.cursor + s.offset + 1
}

// isEmpty reports whether line is blank or a comment line (first non-space
// is '#'), the "current line empty" predicate of §4.3.
func isEmpty(line string) bool {
	t := strings.TrimLeft(line, " \t")
	return t == "" || strings.HasPrefix(t, "#")
}

// indent counts the line's leading spaces. Tabs used for indentation are
// rejected with TabIndentation, carrying the scanner's current line number.
func (s *lineScanner) indent(line string) (int, error) {
	n := 0
	for n < len(line) {
		switch line[n] {
		case ' ':
			n++
			continue
		case '\t':
			return 0, newError(TabIndentation, s.lineNumber(), line, "tabs are not allowed for indentation")
		}
		break
	}
	return n, nil
}

// currentIndent is indent() applied to the line under the cursor.
func (s *lineScanner) currentIndent() (int, error) {
	return s.indent(s.current())
}

// noExplicitIndent is the "not supplied" sentinel for nextBlock's first
// argument: derive newIndent from the line after the cursor instead.
const noExplicitIndent = -1

// nextBlock extracts the "next embedded block" per §4.3: advance one line,
// establish newIndent (explicitIndent if >= 0, else the indent of the line
// just advanced to; that is 0 when the line is blank or a comment, and a
// non-blank line at indent 0 means there is no block), then collect every
// line whose indent is >= newIndent, stripped of newIndent leading spaces.
// Blank and comment lines are collected as "". A non-empty line at
// indent 0 ends the block and is pushed back; an IndentationError is raised
// for a non-empty line at 0 < indent < newIndent. Returns (nil, nil) when
// there is no embedded block to extract.
func (s *lineScanner) nextBlock(explicitIndent int) ([]string, error) {
	if !s.advance() {
		return nil, nil
	}

	newIndent := explicitIndent
	if newIndent < 0 {
		line := s.current()
		if isEmpty(line) {
			newIndent = 0
		} else {
			ind, err := s.indent(line)
			if err != nil {
				return nil, err
			}
			if ind == 0 {
				s.retreat()
				return nil, nil
			}
			newIndent = ind
		}
	}

	var collected []string
	for {
		line := s.current()
		if isEmpty(line) {
			collected = append(collected, "")
			if !s.advance() {
				break
			}
			continue
		}
		ind, err := s.indent(line)
		if err != nil {
			return nil, err
		}
		if ind == 0 {
			s.retreat()
			break
		}
		if ind < newIndent {
			return nil, newError(IndentationError, s.lineNumber(), line,
				"inconsistent indentation: line indented %d, expected at least %d", ind, newIndent)
		}
		collected = append(collected, line[newIndent:])
		if !s.advance() {
			break
		}
	}
	return collected, nil
}
