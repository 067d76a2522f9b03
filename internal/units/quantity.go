package units

import (
	"fmt"

	"quantgen/internal/diag"
	"quantgen/internal/itemlist"
	"quantgen/internal/outcome"
)

// ProcessQuantity validates a quantity against the population. Include and
// exclude lists share one uniqueness set, so an instance may be listed once
// across all of them.
func (p *Processor) ProcessQuantity(raw RawQuantity, pop *Population) outcome.Optional[Quantity] {
	c := &typeContext{diags: p.diags}
	name := c.require("quantity", "type", raw.Type, raw.Span).Validate(func(name string) outcome.Validity {
		return outcome.ConditionalOne(isIdentifier(name), func() *diag.Diagnostic {
			return p.diags.InvalidName(name, raw.Type.Span)
		})
	})

	return outcome.Then(name, func(name string) outcome.Optional[Quantity] {
		owner := "quantity " + name
		unit := c.require(owner, "unit", raw.Unit, raw.Span).Validate(func(unit string) outcome.Validity {
			_, ok := pop.Lookup(unit)
			return outcome.ConditionalOne(ok, func() *diag.Diagnostic {
				return p.diags.UnrecognizedUnitType(unit, raw.Unit.Span)
			})
		}).Validate(func(string) outcome.Validity {
			return outcome.ConditionalOne(len(raw.Include) == 0 || len(raw.Exclude) == 0, func() *diag.Diagnostic {
				return p.diags.IncludeAndExclude(owner, raw.Span)
			})
		})

		return outcome.Then(unit, func(unit string) outcome.Optional[Quantity] {
			shared := itemlist.Set[string]{}
			u := itemlist.NewUnique[listDef, string](itemlist.DefaultPolicy(), p.diags, shared)
			u.Check = func(def listDef, item string, index int) outcome.Validity {
				return outcome.ConditionalOne(pop.HasInstance(unit, item), func() *diag.Diagnostic {
					return p.diags.UnrecognizedUnitName(item, unit, def.item(index))
				})
			}

			process := func(arg string, lists []List[string]) outcome.Result[[]string] {
				out := outcome.NewResult([]string(nil))
				for i, list := range lists {
					def := listDef{owner: owner, arg: fmt.Sprintf("%s[%d]", arg, i), list: list}
					o := u.Process(def, list.Items)
					if l, ok := o.Get(); ok {
						out = outcome.MapResult(out, func(names []string) []string { return append(names, l.Items...) })
					}
					out = out.AddDiagnostics(o.Diagnostics()...)
				}
				return out
			}

			included := process("include", raw.Include)
			excluded := process("exclude", raw.Exclude)
			q := Quantity{
				Name:      name,
				Unit:      unit,
				Included:  included.Value(),
				Excluded:  excluded.Value(),
				Instances: effectiveInstances(pop, unit, included.Value(), excluded.Value(), len(raw.Include) > 0),
				Span:      raw.Span,
			}
			return outcome.Present(q, included.Diagnostics()...).AddDiagnostics(excluded.Diagnostics()...)
		})
	})
}

func effectiveInstances(pop *Population, unit string, included, excluded []string, restricted bool) []string {
	if restricted {
		return included
	}
	u, _ := pop.Lookup(unit)
	drop := itemlist.Set[string]{}
	for _, e := range excluded {
		drop.Add(e)
	}
	var out []string
	for _, n := range u.InstanceNames() {
		if !drop.Has(n) {
			out = append(out, n)
		}
	}
	return out
}
