package parser

import (
	"regexp"
	"strings"

	"github.com/shapestone/confyaml/pkg/value"
)

var (
	anchorPrefixPattern = regexp.MustCompile(`^&(\S+)\s*(.*)$`)
	bareAliasPattern    = regexp.MustCompile(`^\*([^\s#]+)\s*(?:#.*)?$`)
	// blockJoinPattern recognizes a literal-block continuation line inside a
	// fallback plain multi-line scalar buffer, per §4.6.
	blockJoinPattern = regexp.MustCompile(`^-+ \|.*\s`)
)

// documentParser is the top-level block-mode engine of §4.6: it composes
// the Block Scanner, Inline Parser, Scalar Evaluator, Folded-Scalar Reader
// and Anchor Table into the full document grammar. One instance is created
// per document-or-nested-block; nested blocks get their own instance that
// shares the outer instance's anchor table by reference.
type documentParser struct {
	scanner *lineScanner
	refs    *anchorTable
}

// Parse is the package's top-level entry point: normalize text, then run
// the Document Parser over the result. A multi-document stream (a `---`
// marker after the optional leading one, which cleanup strips) yields a
// Sequence of each document's root Value.
func Parse(text string) (value.Value, error) {
	lines, offset := cleanup(text)
	return newSubParser(lines, offset, newAnchorTable()).parse()
}

func newSubParser(lines []string, offset int, refs *anchorTable) *documentParser {
	return &documentParser{scanner: newLineScanner(lines, offset), refs: refs}
}

// parse runs the §4.6 top-level loop over dp.scanner's full line range. It
// is used both for the real document (possibly a multi-document stream)
// and, recursively, for every nested block spawned while parsing one.
func (dp *documentParser) parse() (value.Value, error) {
	var documents []value.Value
	accKind := 0 // 0 = nothing yet, 1 = sequence, 2 = mapping
	var seq []value.Value
	var mapping *value.Mapping
	hasEntries := false

	finishCurrent := func() value.Value {
		switch accKind {
		case 1:
			return value.Sequence(seq)
		case 2:
			return value.MappingValue(mapping)
		default:
			return value.Null()
		}
	}
	reset := func() {
		accKind = 0
		seq = nil
		mapping = nil
		hasEntries = false
	}

	for dp.scanner.advance() {
		line := dp.scanner.current()
		if isEmpty(line) {
			continue
		}
		marker := strings.TrimRight(line, " \t")
		if marker == "---" {
			documents = append(documents, finishCurrent())
			reset()
			continue
		}
		if marker == "..." {
			continue
		}

		if lead, val, ok := matchSequenceEntry(line); ok {
			if accKind == 2 {
				return value.Value{}, newError(IndentationError, dp.scanner.lineNumber(), line,
					"sequence entry found inside a mapping block")
			}
			accKind = 1
			hasEntries = true
			elem, err := dp.parseSequenceEntry(lead, val)
			if err != nil {
				return value.Value{}, err
			}
			seq = append(seq, elem)
			continue
		}

		if key, val, ok := matchMappingEntry(line); ok {
			if accKind == 1 {
				return value.Value{}, newError(IndentationError, dp.scanner.lineNumber(), line,
					"mapping entry found inside a sequence block")
			}
			accKind = 2
			hasEntries = true
			if mapping == nil {
				mapping = value.NewMapping()
			}
			if err := dp.parseMappingEntry(mapping, key, val); err != nil {
				return value.Value{}, err
			}
			continue
		}

		if !hasEntries {
			return dp.fallbackPlainScalar(line)
		}
		return value.Value{}, newError(MalformedInline, dp.scanner.lineNumber(), line,
			"line does not match a sequence entry, a mapping entry, or a document marker")
	}

	final := finishCurrent()
	if len(documents) > 0 {
		documents = append(documents, final)
		return value.Sequence(documents), nil
	}
	return final, nil
}

// matchSequenceEntry recognizes the §4.6 pattern `^-(leadspaces value)?$`.
// leadspaces is the count of spaces between the dash and the value; it is
// consulted by the compact-mapping-in-sequence rule, which only fires when
// there is exactly one.
func matchSequenceEntry(line string) (leadspaces int, val string, ok bool) {
	if line == "-" {
		return 0, "", true
	}
	if len(line) >= 2 && line[0] == '-' && line[1] == ' ' {
		rest := line[1:]
		n := 0
		for n < len(rest) && rest[n] == ' ' {
			n++
		}
		return n, strings.TrimRight(rest[n:], " \t"), true
	}
	return 0, "", false
}

// matchMappingEntry recognizes the §4.6 pattern `^key: (value)?$`, with a
// quoted key dequoted to its string form (no scalar evaluation of keys).
func matchMappingEntry(line string) (key, val string, ok bool) {
	if line == "" {
		return "", "", false
	}
	if line[0] == '"' || line[0] == '\'' {
		p := &inlineParser{s: []rune(line)}
		k, err := p.parseQuoted()
		if err != nil {
			return "", "", false
		}
		rest := strings.TrimLeft(string(p.s[p.i:]), " ")
		if rest == "" || rest[0] != ':' {
			return "", "", false
		}
		rest = rest[1:]
		if rest != "" && rest[0] != ' ' {
			return "", "", false
		}
		return k, strings.TrimSpace(rest), true
	}
	if idx := strings.Index(line, ": "); idx >= 0 {
		return line[:idx], strings.TrimSpace(line[idx+2:]), true
	}
	if strings.HasSuffix(line, ":") {
		return line[:len(line)-1], "", true
	}
	return "", "", false
}

// startsFlowOrQuoted reports whether val is itself a flow collection or a
// quoted scalar, the cases where the compact mapping-in-sequence rule must
// not fire even when a lone leading space precedes it — `- {k: v}` is one
// flow-mapping element, not a document-level "key: rest" split.
func startsFlowOrQuoted(val string) bool {
	if val == "" {
		return false
	}
	switch val[0] {
	case '[', '{', '"', '\'':
		return true
	default:
		return false
	}
}

func isCommentOnly(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "#")
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

// nestedBlockOrNull extracts the next embedded block for the current
// cursor position; an absent block (no further-indented line follows)
// yields Null, matching "empty or comment-only value" handling shared by
// sequence and mapping entries.
func (dp *documentParser) nestedBlockOrNull() (value.Value, error) {
	// The block's first line is the one after the cursor, so the sub-parser's
	// line numbers start right after the header line's number.
	start := dp.scanner.lineNumber()
	block, err := dp.scanner.nextBlock(noExplicitIndent)
	if err != nil {
		return value.Value{}, err
	}
	if block == nil {
		return value.Null(), nil
	}
	sub := newSubParser(block, start, dp.refs)
	return sub.parse()
}

// parseValue is §4.7's per-value dispatch: alias, folded scalar, or inline.
func (dp *documentParser) parseValue(raw string) (value.Value, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "*") {
		name := trimmed[1:]
		if idx := strings.Index(name, " #"); idx >= 0 {
			name = name[:idx]
		}
		return dp.refs.lookup(strings.TrimSpace(name), dp.scanner.lineNumber())
	}
	if strings.HasPrefix(trimmed, "|") || strings.HasPrefix(trimmed, ">") {
		block, err := dp.scanner.nextBlock(noExplicitIndent)
		if err != nil {
			return value.Value{}, err
		}
		text, err := readFoldedLines(trimmed, block)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(text), nil
	}
	return ParseInline(trimmed)
}

// parseSequenceEntry handles one `- value` line per §4.6, including the
// anchor prefix and the compact mapping-in-sequence special case.
func (dp *documentParser) parseSequenceEntry(lead int, val string) (value.Value, error) {
	anchorName := ""
	if m := anchorPrefixPattern.FindStringSubmatch(val); m != nil {
		anchorName = m[1]
		val = strings.TrimSpace(m[2])
	}

	var elem value.Value
	var err error
	switch {
	case val == "" || isCommentOnly(val):
		elem, err = dp.nestedBlockOrNull()
	case lead == 1 && !startsFlowOrQuoted(val):
		if key, rest, ok := matchMappingEntry(val); ok {
			elem, err = dp.parseCompactMappingEntry(key, rest)
		} else {
			elem, err = dp.parseValue(val)
		}
	default:
		elem, err = dp.parseValue(val)
	}
	if err != nil {
		return value.Value{}, err
	}
	if anchorName != "" {
		dp.refs.assign(anchorName, elem)
	}
	return elem, nil
}

// parseCompactMappingEntry builds the single-pair mapping for a
// `- key: rest` sequence entry, extending rest with a deeper-indented
// continuation block when one follows, per §4.6.
func (dp *documentParser) parseCompactMappingEntry(key, rest string) (value.Value, error) {
	block, err := dp.scanner.nextBlock(2)
	if err != nil {
		return value.Value{}, err
	}
	val := rest
	if len(block) > 0 {
		parts := append([]string{rest}, block...)
		val = strings.TrimSpace(strings.Join(trimAll(parts), " "))
	}
	pairVal, err := dp.parseValue(val)
	if err != nil {
		return value.Value{}, err
	}
	m := value.NewMapping()
	m.Set(value.String(key), pairVal)
	return value.MappingValue(m), nil
}

// parseMappingEntry handles one `key: value` line per §4.6, including the
// `<<` merge directive and the anchor capture rule.
func (dp *documentParser) parseMappingEntry(m *value.Mapping, key, val string) error {
	if key == "<<" {
		return dp.applyMerge(m, val)
	}

	anchorName := ""
	if am := anchorPrefixPattern.FindStringSubmatch(val); am != nil {
		anchorName = am[1]
		val = strings.TrimSpace(am[2])
	}

	var v value.Value
	var err error
	if val == "" || isCommentOnly(val) {
		v, err = dp.nestedBlockOrNull()
	} else {
		v, err = dp.parseValue(val)
	}
	if err != nil {
		return err
	}
	m.Set(value.String(key), v)
	if anchorName != "" {
		dp.refs.assign(anchorName, v)
	}
	return nil
}

// applyMerge implements the `<<` merge directive's two forms: merge-in-place
// against a bare alias (Set, so it overrides previously-set keys but is
// itself overridden by entries that follow), and a general merge against an
// inline/nested mapping or sequence of mappings (SetIfAbsent, so keys
// already present anywhere in the surrounding mapping win), per §4.6 and
// the ordering clarified in §9.
func (dp *documentParser) applyMerge(m *value.Mapping, val string) error {
	trimmed := strings.TrimSpace(val)

	if am := bareAliasPattern.FindStringSubmatch(trimmed); am != nil {
		ref, err := dp.refs.lookup(am[1], dp.scanner.lineNumber())
		if err != nil {
			return err
		}
		if ref.Kind() != value.KindMapping {
			return newError(MergeError, dp.scanner.lineNumber(), val,
				"merge target %q is not a mapping", am[1])
		}
		for _, p := range ref.Mapping().Pairs() {
			m.Set(p.Key, p.Value)
		}
		return nil
	}

	var resolved value.Value
	var err error
	if trimmed == "" || isCommentOnly(trimmed) {
		resolved, err = dp.nestedBlockOrNull()
	} else {
		resolved, err = dp.parseValue(trimmed)
	}
	if err != nil {
		return err
	}

	switch resolved.Kind() {
	case value.KindMapping:
		for _, p := range resolved.Mapping().Pairs() {
			m.SetIfAbsent(p.Key, p.Value)
		}
		return nil
	case value.KindSequence:
		items := resolved.Sequence()
		combined := value.NewMapping()
		for i := len(items) - 1; i >= 0; i-- {
			if items[i].Kind() != value.KindMapping {
				return newError(MergeError, dp.scanner.lineNumber(), val,
					"merge sequence element %d is not a mapping", i)
			}
			for _, p := range items[i].Mapping().Pairs() {
				combined.Set(p.Key, p.Value)
			}
		}
		for _, p := range combined.Pairs() {
			m.SetIfAbsent(p.Key, p.Value)
		}
		return nil
	default:
		return newError(MergeError, dp.scanner.lineNumber(), val,
			"merge value must be a mapping or a sequence of mappings")
	}
}

// fallbackPlainScalar implements §4.6's last-resort mode: a run of lines
// that matches neither a sequence nor a mapping entry is folded into one
// plain multi-line scalar and handed to the Inline Parser.
func (dp *documentParser) fallbackPlainScalar(firstLine string) (value.Value, error) {
	lines := []string{firstLine}
	for dp.scanner.advance() {
		lines = append(lines, dp.scanner.current())
	}

	if len(lines) <= 1 || lines[len(lines)-1] != "" {
		joined := strings.TrimSpace(strings.Join(trimAll(lines), " "))
		return ParseInline(joined)
	}

	content := lines[:len(lines)-1]
	joiner := " "
	for _, l := range content {
		if blockJoinPattern.MatchString(l) {
			joiner = "\n"
			break
		}
	}
	joined := strings.Join(trimAll(content), joiner)

	v, err := ParseInline(joined)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.KindSequence {
		return v, nil
	}
	seq := v.Sequence()
	if len(seq) == 0 || seq[0].Kind() != value.KindString || !strings.HasPrefix(seq[0].String(), "*") {
		return v, nil
	}
	aliased := make([]value.Value, 0, len(seq))
	for _, elem := range seq {
		name := strings.TrimSpace(strings.TrimPrefix(elem.String(), "*"))
		rv, err := dp.refs.lookup(name, dp.scanner.lineNumber())
		if err != nil {
			return value.Value{}, err
		}
		aliased = append(aliased, rv)
	}
	return value.Sequence(aliased), nil
}
