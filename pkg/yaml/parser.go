// Package yaml provides YAML format parsing into a dynamically-typed value
// tree.
//
// This package implements the parser subset described by SPEC_FULL.md: a
// line-oriented, indentation-driven block scanner, a flow-style (inline)
// sub-parser, a scalar evaluator, and an anchor/alias/merge-key resolution
// engine. It intentionally does not attempt full YAML 1.2 conformance —
// see the internal/parser package for the exact subset covered.
//
// # Thread Safety
//
// Parse, ParseStream, and Validate are safe for concurrent use: each call
// builds its own parser state with no shared mutable data.
//
// # Parsing APIs
//
//   - Parse(string) - parses a single YAML document into a value.Value
//   - ParseStream(string) - parses a `---`-separated multi-document stream
//   - Validate(string) - parses and discards the result, reporting only errors
//
// Example:
//
//	v, err := yaml.Parse("name: Alice\nage: 30\n")
//	if err != nil {
//	    // handle error
//	}
//	name, _ := v.Mapping().Get(value.String("name"))
package yaml

import (
	"strings"

	"github.com/shapestone/confyaml/internal/parser"
	"github.com/shapestone/confyaml/pkg/value"
)

// Parse parses a single YAML document into a value.Value.
//
// A `---`-separated multi-document input still parses successfully here:
// Parse returns whatever internal/parser.Parse returns for it, which is a
// Sequence of each document's root. Callers that want the documents kept
// apart regardless of count should use ParseStream instead.
func Parse(input string) (value.Value, error) {
	return parser.Parse(input)
}

// ParseStream parses a YAML stream and always returns one value.Value per
// document, even when the stream contains exactly one document (unlike
// Parse, which returns that single document's root directly).
//
// internal/parser.Parse represents a multi-document stream the same way it
// represents a single document whose own root is a sequence: both come back
// as a value.KindSequence Value. ParseStream tells the two apart by checking
// the raw input for a `---` marker beyond the one stream-leading marker (if
// any) that a single document is allowed to start with — the same marker
// internal/parser's document loop uses to end one document and start the
// next. Only when that second marker is present does ParseStream split the
// sequence into per-document values; otherwise the sequence is itself the
// one document's root.
//
// Example:
//
//	docs, err := yaml.ParseStream("---\nname: doc1\n---\nname: doc2\n")
//	// docs[0] and docs[1] are each document's root Value
func ParseStream(input string) ([]value.Value, error) {
	v, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	if v.Kind() != value.KindSequence || !hasInnerDocumentMarker(input) {
		return []value.Value{v}, nil
	}
	return v.Sequence(), nil
}

// hasInnerDocumentMarker reports whether input contains a `---` document
// marker beyond the single leading one a lone document may start with,
// mirroring the leading-marker stripping internal/parser's cleanup step
// performs before its document loop looks for further markers.
func hasInnerDocumentMarker(input string) bool {
	text := strings.ReplaceAll(input, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) > 0 && strings.HasPrefix(lines[0], "%YAML") {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.HasPrefix(strings.TrimLeft(lines[0], " \t"), "#") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimRight(lines[0], " \t") == "---" {
		lines = lines[1:]
		if len(lines) > 0 && strings.TrimRight(lines[len(lines)-1], " \t") == "..." {
			lines = lines[:len(lines)-1]
		}
	}

	for _, line := range lines {
		if strings.TrimRight(line, " \t") == "---" {
			return true
		}
	}
	return false
}

// Validate checks that input is syntactically valid per the parser subset,
// discarding the resulting value tree. Returns nil if valid, or the
// *parser.InvalidInputError describing the first failure.
//
// Example:
//
//	if err := yaml.Validate(yamlStr); err != nil {
//	    fmt.Printf("invalid YAML: %v\n", err)
//	}
func Validate(input string) error {
	_, err := parser.Parse(input)
	return err
}
