package parser

import (
	"strings"

	"github.com/shapestone/confyaml/pkg/value"
)

// inlineParser implements the Inline Parser (SPEC_FULL.md §4.2): a recursive
// descent over a single logical line of flow-style YAML (`[...]`, `{...}`,
// a quoted scalar, or a bare plain scalar). It is entered fresh for every
// call to ParseInline and re-enters itself for nested flow collections.
type inlineParser struct {
	s []rune
	i int
}

// ParseInline is the §4.2 entry point `load_inline`.
func ParseInline(s string) (value.Value, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return value.String(""), nil
	}
	p := &inlineParser{s: []rune(trimmed)}
	switch p.s[0] {
	case '[':
		return p.parseSequence()
	case '{':
		return p.parseMapping()
	default:
		return p.parseTopLevelScalar()
	}
}

func (p *inlineParser) eof() bool { return p.i >= len(p.s) }
func (p *inlineParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.s[p.i]
}

func (p *inlineParser) skipSpaces() {
	for !p.eof() && p.s[p.i] == ' ' {
		p.i++
	}
}

// skipSpacesAndCommas advances past the separators between flow entries.
func (p *inlineParser) skipSpacesAndCommas() {
	for !p.eof() && (p.s[p.i] == ' ' || p.s[p.i] == ',') {
		p.i++
	}
}

// parseTopLevelScalar handles a bare value (not starting with '[' or '{'):
// a quote-aware scan to end-of-input, with " #" treated as a trailing
// comment.
func (p *inlineParser) parseTopLevelScalar() (value.Value, error) {
	if p.peek() == '"' || p.peek() == '\'' {
		s, err := p.parseQuoted()
		if err != nil {
			return value.Value{}, err
		}
		// A value that is nothing but a quoted scalar stays a string:
		// quoting suppresses scalar-evaluator heuristics (quoted "true"
		// is the string "true", not a bool).
		if p.eof() || strings.TrimSpace(string(p.s[p.i:])) == "" {
			return value.String(s), nil
		}
		// Trailing content after the closing quote: fall through and
		// evaluate the raw text as a whole (rare in this subset).
	}
	raw := string(p.s)
	if idx := strings.Index(raw, " #"); idx >= 0 {
		raw = raw[:idx]
	}
	return EvaluateScalar(strings.TrimSpace(raw)), nil
}

// parseQuoted implements §4.2 parse_quoted: p.i must point at an opening
// quote. For double quotes, \", \n, \r are unescaped; for single quotes,
// '' unescapes to a literal '. No other escapes are recognized.
func (p *inlineParser) parseQuoted() (string, error) {
	quote := p.s[p.i]
	p.i++
	var b strings.Builder
	for {
		if p.eof() {
			return "", newError(MalformedInline, 0, "", "unterminated quoted scalar")
		}
		c := p.s[p.i]
		if quote == '\'' {
			if c == '\'' {
				if p.i+1 < len(p.s) && p.s[p.i+1] == '\'' {
					b.WriteRune('\'')
					p.i += 2
					continue
				}
				p.i++
				return b.String(), nil
			}
			b.WriteRune(c)
			p.i++
			continue
		}
		// double-quoted
		if c == '"' {
			p.i++
			return b.String(), nil
		}
		if c == '\\' && p.i+1 < len(p.s) {
			next := p.s[p.i+1]
			switch next {
			case '"':
				b.WriteRune('"')
				p.i += 2
				continue
			case 'n':
				b.WriteRune('\n')
				p.i += 2
				continue
			case 'r':
				b.WriteRune('\r')
				p.i += 2
				continue
			}
		}
		b.WriteRune(c)
		p.i++
	}
}

// readFlowScalarRaw scans up to (but not consuming) the first rune in delims
// that isn't inside a quoted span, returning the trimmed raw text.
func (p *inlineParser) readFlowScalarRaw(delims string) string {
	start := p.i
	for !p.eof() {
		c := p.s[p.i]
		if c == '"' || c == '\'' {
			p.skipQuotedSpan(c)
			continue
		}
		if strings.ContainsRune(delims, c) {
			break
		}
		p.i++
	}
	return strings.TrimSpace(string(p.s[start:p.i]))
}

func (p *inlineParser) skipQuotedSpan(quote rune) {
	p.i++ // opening quote
	for !p.eof() {
		c := p.s[p.i]
		if quote == '\'' {
			if c == '\'' {
				if p.i+1 < len(p.s) && p.s[p.i+1] == '\'' {
					p.i += 2
					continue
				}
				p.i++
				return
			}
			p.i++
			continue
		}
		if c == '"' {
			p.i++
			return
		}
		if c == '\\' && p.i+1 < len(p.s) {
			p.i += 2
			continue
		}
		p.i++
	}
}

// isFullyQuoted reports whether raw is a single quoted scalar with nothing
// outside the quotes.
func isFullyQuoted(raw string) bool {
	if len(raw) < 2 {
		return false
	}
	q := raw[0]
	if q != '"' && q != '\'' {
		return false
	}
	return raw[len(raw)-1] == q
}

// evaluateFlowScalar turns raw flow-scalar text into a Value, applying the
// "key: value" recovery rule documented in §4.2 and §9: an unquoted scalar
// containing ": " is retried as a single-pair `{ scalar }` mapping before
// falling back to a plain scalar. This can mishandle a quoted region that
// happens to contain ": " — a known, intentionally-preserved edge case.
func evaluateFlowScalar(raw string) (value.Value, error) {
	if isFullyQuoted(raw) {
		sub := &inlineParser{s: []rune(raw)}
		s, err := sub.parseQuoted()
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	}
	if strings.Contains(raw, ": ") {
		if v, err := ParseInline("{ " + raw + " }"); err == nil {
			return v, nil
		}
	}
	return EvaluateScalar(raw), nil
}

// parseSequence implements §4.2 parse_sequence. p.i points at '['.
func (p *inlineParser) parseSequence() (value.Value, error) {
	p.i++ // consume '['
	var items []value.Value
	for {
		p.skipSpacesAndCommas()
		if p.eof() {
			return value.Value{}, newError(MalformedInline, 0, "", "unclosed '[' in flow sequence")
		}
		if p.peek() == ']' {
			p.i++
			return value.Sequence(items), nil
		}
		var elem value.Value
		var err error
		switch p.peek() {
		case '[':
			elem, err = p.parseSequence()
		case '{':
			elem, err = p.parseMapping()
		default:
			raw := p.readFlowScalarRaw(",]")
			elem, err = evaluateFlowScalar(raw)
		}
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, elem)
	}
}

// parseMapping implements §4.2 parse_mapping. p.i points at '{'.
func (p *inlineParser) parseMapping() (value.Value, error) {
	p.i++ // consume '{'
	m := value.NewMapping()
	for {
		p.skipSpacesAndCommas()
		if p.eof() {
			return value.Value{}, newError(MalformedInline, 0, "", "unclosed '{' in flow mapping")
		}
		if p.peek() == '}' {
			p.i++
			return value.MappingValue(m), nil
		}

		var key string
		if p.peek() == '"' || p.peek() == '\'' {
			s, err := p.parseQuoted()
			if err != nil {
				return value.Value{}, err
			}
			key = s
			p.skipSpaces()
		} else {
			key = p.readFlowScalarRaw(": ")
		}
		p.skipSpaces()
		if p.eof() || p.peek() != ':' {
			return value.Value{}, newError(MalformedInline, 0, "", "expected ':' after flow mapping key %q", key)
		}
		p.i++ // consume ':'
		p.skipSpaces()

		var val value.Value
		var err error
		switch p.peek() {
		case '[':
			val, err = p.parseSequence()
		case '{':
			val, err = p.parseMapping()
		default:
			raw := p.readFlowScalarRaw(",}")
			val, err = evaluateFlowScalar(raw)
		}
		if err != nil {
			return value.Value{}, err
		}
		m.Set(value.String(key), val)
	}
}
