package parser

import (
	"testing"

	"github.com/shapestone/confyaml/pkg/value"
)

func TestParseInlineScalar(t *testing.T) {
	got, err := ParseInline("  42  ")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != value.KindInt || got.Int() != 42 {
		t.Errorf("ParseInline(42) = %v, want Int(42)", got)
	}
}

func TestParseInlineQuotedStaysString(t *testing.T) {
	got, err := ParseInline(`"true"`)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != value.KindString || got.String() != "true" {
		t.Errorf(`ParseInline("true") = %v, want String("true")`, got)
	}
}

func TestParseInlineSequence(t *testing.T) {
	got, err := ParseInline("[1, 2, hello]")
	if err != nil {
		t.Fatal(err)
	}
	seq := got.Sequence()
	if len(seq) != 3 {
		t.Fatalf("len(seq) = %d, want 3", len(seq))
	}
	if seq[0].Int() != 1 || seq[1].Int() != 2 || seq[2].String() != "hello" {
		t.Errorf("seq = %v", seq)
	}
}

func TestParseInlineNestedSequence(t *testing.T) {
	got, err := ParseInline("[1, [2, 3], {k: v}]")
	if err != nil {
		t.Fatal(err)
	}
	seq := got.Sequence()
	if len(seq) != 3 {
		t.Fatalf("len(seq) = %d, want 3", len(seq))
	}
	if seq[1].Kind() != value.KindSequence || len(seq[1].Sequence()) != 2 {
		t.Errorf("seq[1] = %v, want sequence of 2", seq[1])
	}
	if seq[2].Kind() != value.KindMapping {
		t.Errorf("seq[2] = %v, want mapping", seq[2])
	}
}

func TestParseInlineMapping(t *testing.T) {
	got, err := ParseInline("{a: 1, b: hello}")
	if err != nil {
		t.Fatal(err)
	}
	m := got.Mapping()
	a, _ := m.Get(value.String("a"))
	b, _ := m.Get(value.String("b"))
	if a.Int() != 1 || b.String() != "hello" {
		t.Errorf("mapping = %v", m.Pairs())
	}
}

func TestParseInlineCompactMappingRecovery(t *testing.T) {
	// An unquoted sequence element containing ": " is retried as a
	// single-pair mapping, per SPEC_FULL.md §4.2 and §9.
	got, err := ParseInline("[k: v]")
	if err != nil {
		t.Fatal(err)
	}
	seq := got.Sequence()
	if len(seq) != 1 || seq[0].Kind() != value.KindMapping {
		t.Fatalf("seq = %v, want single mapping element", seq)
	}
	v, _ := seq[0].Mapping().Get(value.String("k"))
	if v.String() != "v" {
		t.Errorf("recovered mapping value = %v, want v", v)
	}
}

func TestParseInlineUnclosedSequenceIsMalformed(t *testing.T) {
	_, err := ParseInline("[1, 2")
	if err == nil {
		t.Fatal("expected MalformedInline error, got nil")
	}
	iie, ok := err.(*InvalidInputError)
	if !ok || iie.Kind != MalformedInline {
		t.Errorf("err = %v, want MalformedInline", err)
	}
}

func TestParseInlineEmpty(t *testing.T) {
	got, err := ParseInline("   ")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != value.KindString || got.String() != "" {
		t.Errorf("ParseInline(empty) = %v, want empty String", got)
	}
}
