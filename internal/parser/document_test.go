package parser

import (
	"testing"

	"github.com/shapestone/confyaml/pkg/value"
)

func TestParseSimpleMapping(t *testing.T) {
	got, err := Parse("a: 1\nb: hello\n")
	if err != nil {
		t.Fatal(err)
	}
	m := got.Mapping()
	a, _ := m.Get(value.String("a"))
	b, _ := m.Get(value.String("b"))
	if a.Int() != 1 || b.String() != "hello" {
		t.Errorf("got %v", m.Pairs())
	}
}

func TestParseSequenceOfMixedElements(t *testing.T) {
	got, err := Parse("- 1\n- [2, 3]\n- {k: v}\n")
	if err != nil {
		t.Fatal(err)
	}
	seq := got.Sequence()
	if len(seq) != 3 {
		t.Fatalf("len = %d, want 3", len(seq))
	}
	if seq[0].Int() != 1 {
		t.Errorf("seq[0] = %v, want Int 1", seq[0])
	}
	inner := seq[1].Sequence()
	if len(inner) != 2 || inner[0].Int() != 2 || inner[1].Int() != 3 {
		t.Errorf("seq[1] = %v", inner)
	}
	kv, _ := seq[2].Mapping().Get(value.String("k"))
	if kv.String() != "v" {
		t.Errorf("seq[2] = %v, want mapping{k: v}", seq[2])
	}
}

func TestParseMergeKeyOverridesPreviousButNotSubsequent(t *testing.T) {
	// x: 0 precedes the merge and is overridden by it; y: 9 follows it and wins.
	src := "base: &B\n  x: 1\n  y: 2\nder:\n  x: 0\n  <<: *B\n  y: 9\n  z: 3\n"
	got, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	der, _ := got.Mapping().Get(value.String("der"))
	x, _ := der.Mapping().Get(value.String("x"))
	y, _ := der.Mapping().Get(value.String("y"))
	z, _ := der.Mapping().Get(value.String("z"))
	if x.Int() != 1 || y.Int() != 9 || z.Int() != 3 {
		t.Errorf("der = %v, want {x:1, y:9, z:3}", der.Mapping().Pairs())
	}
}

func TestParseFoldedScalarField(t *testing.T) {
	literal, err := Parse("text: |\n  line1\n  line2\n")
	if err != nil {
		t.Fatal(err)
	}
	lv, _ := literal.Mapping().Get(value.String("text"))
	if lv.String() != "line1\nline2\n" {
		t.Errorf("literal text = %q", lv.String())
	}

	folded, err := Parse("text: >\n  line1\n  line2\n")
	if err != nil {
		t.Fatal(err)
	}
	fv, _ := folded.Mapping().Get(value.String("text"))
	if fv.String() != "line1 line2\n" {
		t.Errorf("folded text = %q", fv.String())
	}
}

func TestParseMultiDocumentStream(t *testing.T) {
	got, err := Parse("---\na: 1\n---\nb: 2\n")
	if err != nil {
		t.Fatal(err)
	}
	docs := got.Sequence()
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	a, _ := docs[0].Mapping().Get(value.String("a"))
	b, _ := docs[1].Mapping().Get(value.String("b"))
	if a.Int() != 1 || b.Int() != 2 {
		t.Errorf("docs = %v", docs)
	}
}

func TestParseTabIndentationError(t *testing.T) {
	_, err := Parse("tabby:\n\tindented: x\n")
	if err == nil {
		t.Fatal("expected TabIndentation error")
	}
	iie, ok := err.(*InvalidInputError)
	if !ok || iie.Kind != TabIndentation {
		t.Fatalf("err = %v, want TabIndentation", err)
	}
	if iie.Line != 2 {
		t.Errorf("Line = %d, want 2", iie.Line)
	}
}

func TestParseUnknownAliasIsReferenceError(t *testing.T) {
	_, err := Parse("a: *missing\n")
	if err == nil {
		t.Fatal("expected ReferenceError")
	}
	iie, ok := err.(*InvalidInputError)
	if !ok || iie.Kind != ReferenceError {
		t.Errorf("err = %v, want ReferenceError", err)
	}
}

func TestParseMergeAgainstScalarIsMergeError(t *testing.T) {
	_, err := Parse("base: &B 1\nder:\n  <<: *B\n")
	if err == nil {
		t.Fatal("expected MergeError")
	}
	iie, ok := err.(*InvalidInputError)
	if !ok || iie.Kind != MergeError {
		t.Errorf("err = %v, want MergeError", err)
	}
}

func TestParseSequenceMergeRightToLeft(t *testing.T) {
	// The merge value is a block sequence of aliases (not a flow `[*A, *B]`):
	// elements of a flow sequence go through the Inline Parser, which never
	// resolves aliases — only parse_value's top-level dispatch (§4.7) does.
	src := "one: &A\n  x: 1\n  y: 1\ntwo: &B\n  y: 2\n  z: 2\nder:\n  <<:\n    - *A\n    - *B\n"
	got, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	der, _ := got.Mapping().Get(value.String("der"))
	x, _ := der.Mapping().Get(value.String("x"))
	y, _ := der.Mapping().Get(value.String("y"))
	z, _ := der.Mapping().Get(value.String("z"))
	// Earlier-listed (*A) wins over later-listed (*B) for the shared key y.
	if x.Int() != 1 || y.Int() != 1 || z.Int() != 2 {
		t.Errorf("der = %v, want {x:1, y:1, z:2}", der.Mapping().Pairs())
	}
}

func TestParseKeyUniquenessLastWriterWinsInPlace(t *testing.T) {
	got, err := Parse("a: 1\na: 2\n")
	if err != nil {
		t.Fatal(err)
	}
	m := got.Mapping()
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (duplicate key collapses)", m.Len())
	}
	a, _ := m.Get(value.String("a"))
	if a.Int() != 2 {
		t.Errorf("a = %v, want 2 (last write wins)", a)
	}
}

func TestParseNullValueForEmptyMappingEntry(t *testing.T) {
	got, err := Parse("a:\nb: 1\n")
	if err != nil {
		t.Fatal(err)
	}
	a, _ := got.Mapping().Get(value.String("a"))
	if !a.IsNull() {
		t.Errorf("a = %v, want Null", a)
	}
}
