package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shapestone/confyaml/pkg/value"
)

// EvaluateScalar is the Scalar Evaluator (SPEC_FULL.md §4.1): a pure
// string -> value.Value function with no parser state. Rule priority is
// observable behavior (an all-digit string with a leading zero becomes
// octal, not decimal) and must be preserved exactly, including the quirks
// called out below.
func EvaluateScalar(s string) value.Value {
	switch {
	case isNullLiteral(s):
		return value.Null()
	case strings.HasPrefix(s, "!str"):
		// "!str" is always followed by a separating space in well-formed
		// input; slicing at 5 drops "!str ". A bare "!str" (len 4) yields "".
		if len(s) <= 5 {
			return value.String("")
		}
		return value.String(s[5:])
	case strings.HasPrefix(s, "! "):
		if i, err := strconv.ParseInt(strings.TrimSpace(s[2:]), 10, 64); err == nil {
			return value.Int(i)
		}
		return value.String(s)
	case isAllASCIIDigits(s):
		return evaluateDigitString(s)
	case isTruthy(s):
		return value.Bool(true)
	case isFalsy(s):
		return value.Bool(false)
	}

	if v, ok := evaluateNumeric(s); ok {
		return v
	}

	lower := strings.ToLower(s)
	switch lower {
	case ".inf", ".nan":
		// The reference implementation computes both via -log(0), which is
		// +Inf for any argument approaching 0 from above; NaN is therefore
		// never produced here. Reproduced verbatim per SPEC_FULL.md §9.
		return value.Float(math.Inf(1))
	case "-.inf":
		return value.Float(math.Inf(-1))
	}

	if v, ok := evaluateCommaFloat(s); ok {
		return v
	}

	if v, ok := evaluateTimestamp(s); ok {
		return v
	}

	return value.String(s)
}

func isNullLiteral(s string) bool {
	return s == "" || s == "~" || strings.EqualFold(s, "null")
}

var truthySet = map[string]bool{"true": true, "on": true, "+": true, "yes": true, "y": true}
var falsySet = map[string]bool{"false": true, "off": true, "-": true, "no": true, "n": true}

func isTruthy(s string) bool { return truthySet[strings.ToLower(s)] }
func isFalsy(s string) bool  { return falsySet[strings.ToLower(s)] }

func isAllASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// evaluateDigitString handles rule 4: an unsigned run of ASCII digits.
// Leading-zero multi-digit strings parse as octal and fall back to String
// only when they are not valid octal (e.g. "09") or overflow; "010" is 8.
// Everything else parses as decimal, falling back to String when
// round-tripping the parsed integer back to decimal text doesn't reproduce
// the input (overflow).
func evaluateDigitString(s string) value.Value {
	if s[0] == '0' && len(s) > 1 {
		i, err := strconv.ParseInt(s, 8, 64)
		if err != nil {
			return value.String(s)
		}
		return value.Int(i)
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return value.String(s)
	}
	if strconv.FormatInt(i, 10) != s {
		return value.String(s)
	}
	return value.Int(i)
}

var hexPattern = regexp.MustCompile(`^[-+]?0[xX][0-9a-fA-F]+$`)
var numericPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

// evaluateNumeric implements rule 7: hex literals parse as Int; every other
// numeric-looking string (including bare signed integers with no decimal
// point) parses as Float. Preserving "Float, not Int, for a signed plain
// integer" is intentional: it matches the reference's unconditional
// floatval() call for the non-hex branch.
func evaluateNumeric(s string) (value.Value, bool) {
	if hexPattern.MatchString(s) {
		neg := false
		t := s
		if t[0] == '+' || t[0] == '-' {
			neg = t[0] == '-'
			t = t[1:]
		}
		i, err := strconv.ParseInt(t[2:], 16, 64)
		if err != nil {
			return value.Value{}, false
		}
		if neg {
			i = -i
		}
		return value.Int(i), true
	}
	if numericPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Value{}, false
		}
		return value.Float(f), true
	}
	return value.Value{}, false
}

var commaFloatPattern = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

func evaluateCommaFloat(s string) (value.Value, bool) {
	if !commaFloatPattern.MatchString(s) {
		return value.Value{}, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return value.Value{}, false
	}
	return value.Float(f), true
}

// timestampPattern recognizes the ISO-8601-ish grammar from the Glossary:
// YYYY-MM-DD optionally followed by T/whitespace, HH:MM:SS, fractional
// seconds, and a Z or ±HH[:MM] offset.
var timestampPattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})` +
		`(?:(?:[Tt]|[ \t]+)(\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?` +
		`(?:[ \t]*(Z|[-+]\d{2}(?::?\d{2})?))?)?$`)

func evaluateTimestamp(s string) (value.Value, bool) {
	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return value.Value{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	loc := time.UTC
	hour, min, sec, nsec := 0, 0, 0, 0
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		min, _ = strconv.Atoi(m[5])
		sec, _ = strconv.Atoi(m[6])
		if m[7] != "" {
			frac := m[7]
			for len(frac) < 9 {
				frac += "0"
			}
			nsec, _ = strconv.Atoi(frac[:9])
		}
		if off := m[8]; off != "" && off != "Z" {
			sign := 1
			if off[0] == '-' {
				sign = -1
			}
			digits := strings.ReplaceAll(off[1:], ":", "")
			var offHour, offMin int
			switch len(digits) {
			case 2:
				offHour, _ = strconv.Atoi(digits)
			case 4:
				offHour, _ = strconv.Atoi(digits[:2])
				offMin, _ = strconv.Atoi(digits[2:])
			}
			loc = time.FixedZone("", sign*(offHour*3600+offMin*60))
		}
	}

	t := time.Date(year, time.Month(month), day, hour, min, sec, nsec, loc)
	return value.Timestamp(t.Unix()), true
}
