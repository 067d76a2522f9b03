package decl

import (
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"quantgen/internal/diag"
	"quantgen/internal/units"
)

// fields maps the keys a mapping accepts to their decoders.
type fields map[string]func(v *yaml.Node)

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = deref(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// mapping decodes the keys of n in document order. Unknown keys are reported
// as warnings and skipped.
func (d *decoder) mapping(n *yaml.Node, owner string, known fields) {
	n = deref(n)
	if n.Kind != yaml.MappingNode {
		d.errorf(diag.IODeclSyntax, n, "%s must be a mapping", owner)
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], deref(n.Content[i+1])
		decode, ok := known[key.Value]
		if !ok {
			diag.ReportWarning(d.r, diag.IODeclUnknownKey, d.span(key), "unknown key \""+key.Value+"\" in "+owner).Emit()
			continue
		}
		decode(value)
	}
}

func (d *decoder) sequence(n *yaml.Node, owner string, each func(item *yaml.Node)) {
	if isNull(n) {
		return
	}
	if n.Kind != yaml.SequenceNode {
		d.errorf(diag.IODeclSyntax, n, "%s must be a list", owner)
		return
	}
	for _, item := range n.Content {
		each(deref(item))
	}
}

func (d *decoder) str(n *yaml.Node) units.Located[string] {
	if isNull(n) {
		return units.Located[string]{Span: d.span(n)}
	}
	if n.Kind != yaml.ScalarNode {
		d.errorf(diag.IODeclSyntax, n, "expected a scalar value")
		return units.Located[string]{Span: d.span(n)}
	}
	// NFC so canonically equivalent spellings compare equal.
	return units.At(norm.NFC.String(n.Value), d.span(n))
}

func (d *decoder) boolean(n *yaml.Node) units.Located[bool] {
	if isNull(n) {
		return units.Located[bool]{Span: d.span(n)}
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		d.errorf(diag.IODeclSyntax, n, "expected true or false, got %q", n.Value)
		return units.Located[bool]{Span: d.span(n)}
	}
	return units.At(b, d.span(n))
}

// list decodes a list of names. A single scalar is accepted as a one-item
// list and null items stay nil.
func (d *decoder) list(n *yaml.Node) units.List[string] {
	if isNull(n) {
		return units.List[string]{Span: d.span(n)}
	}
	out := units.List[string]{Span: d.span(n), Given: true}
	items := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		items = n.Content
	}
	for _, item := range items {
		item = deref(item)
		out.Spans = append(out.Spans, d.span(item))
		switch {
		case isNull(item):
			out.Items = append(out.Items, nil)
		case item.Kind == yaml.ScalarNode:
			v := item.Value
			out.Items = append(out.Items, &v)
		default:
			d.errorf(diag.IODeclSyntax, item, "expected a name")
			out.Items = append(out.Items, nil)
		}
	}
	return out
}

// lists decodes either one list of names or a list of such lists.
func (d *decoder) lists(n *yaml.Node) []units.List[string] {
	if isNull(n) {
		return nil
	}
	if n.Kind == yaml.SequenceNode && len(n.Content) > 0 {
		nested := true
		for _, item := range n.Content {
			if deref(item).Kind != yaml.SequenceNode {
				nested = false
				break
			}
		}
		if nested {
			out := make([]units.List[string], len(n.Content))
			for i, item := range n.Content {
				out[i] = d.list(deref(item))
			}
			return out
		}
	}
	return []units.List[string]{d.list(n)}
}
