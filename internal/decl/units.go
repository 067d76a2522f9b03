package decl

import (
	"gopkg.in/yaml.v3"

	"quantgen/internal/units"
)

func (d *decoder) instance(raw *units.RawInstance, n *yaml.Node, extra fields) fields {
	raw.Span = d.span(n)
	f := fields{
		"name":   func(v *yaml.Node) { raw.Name = d.str(v) },
		"plural": func(v *yaml.Node) { raw.Plural = d.str(v) },
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func (d *decoder) unitType(n *yaml.Node) units.RawUnitType {
	var u units.RawUnitType
	u.Span = d.span(n)
	d.mapping(n, "unit type", fields{
		"type":      func(v *yaml.Node) { u.Type = d.str(v) },
		"quantity":  func(v *yaml.Node) { u.Quantity = d.str(v) },
		"bias_term": func(v *yaml.Node) { u.BiasTerm = d.boolean(v) },
		"fixed": func(v *yaml.Node) {
			d.sequence(v, "fixed", func(item *yaml.Node) {
				var f units.RawFixed
				d.mapping(item, "fixed unit instance", d.instance(&f.RawInstance, item, nil))
				u.Fixed = append(u.Fixed, f)
			})
		},
		"derivations": func(v *yaml.Node) {
			d.sequence(v, "derivations", func(item *yaml.Node) {
				u.Derivations = append(u.Derivations, d.derivation(item))
			})
		},
		"derived": func(v *yaml.Node) {
			d.sequence(v, "derived", func(item *yaml.Node) {
				var r units.RawDerived
				d.mapping(item, "derived unit instance", d.instance(&r.RawInstance, item, fields{
					"derivation": func(v *yaml.Node) { r.DerivationID = d.str(v) },
					"units":      func(v *yaml.Node) { r.Units = d.list(v) },
				}))
				u.Derived = append(u.Derived, r)
			})
		},
		"aliases": func(v *yaml.Node) {
			d.sequence(v, "aliases", func(item *yaml.Node) {
				var r units.RawAlias
				d.mapping(item, "alias unit instance", d.instance(&r.RawInstance, item, fields{
					"alias_of": func(v *yaml.Node) { r.AliasOf = d.str(v) },
				}))
				u.Aliases = append(u.Aliases, r)
			})
		},
		"scaled": func(v *yaml.Node) {
			d.sequence(v, "scaled", func(item *yaml.Node) {
				var r units.RawScaled
				d.mapping(item, "scaled unit instance", d.instance(&r.RawInstance, item, fields{
					"from":  func(v *yaml.Node) { r.From = d.str(v) },
					"scale": func(v *yaml.Node) { r.Scale = d.str(v) },
				}))
				u.Scaled = append(u.Scaled, r)
			})
		},
		"prefixed": func(v *yaml.Node) {
			d.sequence(v, "prefixed", func(item *yaml.Node) {
				var r units.RawPrefixed
				d.mapping(item, "prefixed unit instance", d.instance(&r.RawInstance, item, fields{
					"from":          func(v *yaml.Node) { r.From = d.str(v) },
					"metric_prefix": func(v *yaml.Node) { r.MetricPrefix = d.str(v) },
					"binary_prefix": func(v *yaml.Node) { r.BinaryPrefix = d.str(v) },
				}))
				u.Prefixed = append(u.Prefixed, r)
			})
		},
		"biased": func(v *yaml.Node) {
			d.sequence(v, "biased", func(item *yaml.Node) {
				var r units.RawBiased
				d.mapping(item, "biased unit instance", d.instance(&r.RawInstance, item, fields{
					"from": func(v *yaml.Node) { r.From = d.str(v) },
					"bias": func(v *yaml.Node) { r.Bias = d.str(v) },
				}))
				u.Biased = append(u.Biased, r)
			})
		},
	})
	return u
}

func (d *decoder) derivation(n *yaml.Node) units.RawDerivation {
	var r units.RawDerivation
	r.Span = d.span(n)
	d.mapping(n, "derivation", fields{
		"id":           func(v *yaml.Node) { r.ID = d.str(v) },
		"expression":   func(v *yaml.Node) { r.Expression = d.str(v) },
		"signature":    func(v *yaml.Node) { r.Signature = d.list(v) },
		"permutations": func(v *yaml.Node) { r.Permutations = d.boolean(v) },
	})
	return r
}

func (d *decoder) quantity(n *yaml.Node) units.RawQuantity {
	var q units.RawQuantity
	q.Span = d.span(n)
	d.mapping(n, "quantity", fields{
		"type":    func(v *yaml.Node) { q.Type = d.str(v) },
		"unit":    func(v *yaml.Node) { q.Unit = d.str(v) },
		"include": func(v *yaml.Node) { q.Include = d.lists(v) },
		"exclude": func(v *yaml.Node) { q.Exclude = d.lists(v) },
	})
	return q
}
