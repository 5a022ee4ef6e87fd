package parser

import "github.com/shapestone/confyaml/pkg/value"

// anchorTable is the Anchor/Alias Table (SPEC_FULL.md §4.5): a flat name to
// Value map shared by reference across every sub-parser invoked while
// processing one document, so an anchor defined deep in one branch can be
// aliased from anywhere else in the same document.
type anchorTable struct {
	values map[string]value.Value
}

func newAnchorTable() *anchorTable {
	return &anchorTable{values: make(map[string]value.Value)}
}

// assign records v under name, overwriting any previous anchor of the same
// name (a document may legally redefine an anchor; the alias that follows
// always resolves to the most recent assignment).
func (t *anchorTable) assign(name string, v value.Value) {
	t.values[name] = v
}

// lookup resolves an alias. An unknown name is a ReferenceError carrying the
// line the alias appeared on.
func (t *anchorTable) lookup(name string, line int) (value.Value, error) {
	v, ok := t.values[name]
	if !ok {
		return value.Value{}, newError(ReferenceError, line, "*"+name, "undefined anchor %q", name)
	}
	return v, nil
}
