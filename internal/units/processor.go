package units

import (
	"errors"
	"fmt"

	"quantgen/internal/diag"
	"quantgen/internal/itemlist"
	"quantgen/internal/outcome"
	"quantgen/internal/resolve"
	"quantgen/internal/source"
)

// Processor turns raw declarations into validated unit types and quantities.
// It keeps no state between calls and may be shared by goroutines.
type Processor struct {
	diags *Diagnostics
}

// NewProcessor panics when d is nil.
func NewProcessor(d *Diagnostics) *Processor {
	if d == nil {
		panic(errors.New("units: nil Diagnostics"))
	}
	return &Processor{diags: d}
}

func (p *Processor) Diagnostics() *Diagnostics {
	return p.diags
}

// typeContext is the state shared while processing the declarations of a
// single unit type.
type typeContext struct {
	diags    *Diagnostics
	unit     string
	biasTerm bool
	names    itemlist.Set[string]

	multipleDerivations bool
	derivationIDs       itemlist.Set[string]
	signatures          itemlist.Set[string]
}

func (c *typeContext) require(owner, arg string, v Located[string], fallback source.Span) outcome.Optional[string] {
	if !v.Set() {
		return outcome.Empty[string](diag.Of(c.diags.MissingArgument(owner, arg, fallback))...)
	}
	if v.Get() == "" {
		return outcome.Empty[string](diag.Of(c.diags.EmptyArgument(owner, arg, v.Span))...)
	}
	return outcome.Present(v.Get())
}

// instance validates the name and plural form shared by all instance kinds.
func (c *typeContext) instance(kind string, raw RawInstance) outcome.Optional[Instance] {
	owner := fmt.Sprintf("%s unit instance of %s", kind, c.unit)
	return outcome.Then(c.require(owner, "name", raw.Name, raw.Span), func(name string) outcome.Optional[Instance] {
		v := outcome.ConditionalOne(isIdentifier(name), func() *diag.Diagnostic {
			return c.diags.InvalidName(name, raw.Name.Span)
		}).Validate(func() outcome.Validity {
			return outcome.ConditionalOne(!c.names.Has(name), func() *diag.Diagnostic {
				return c.diags.DuplicateInstanceName(c.unit, name, raw.Name.Span)
			})
		})
		return outcome.Merge(v, func() outcome.Optional[Instance] {
			return outcome.Map(c.plural(owner, name, raw.Plural), func(plural string) Instance {
				return Instance{Name: name, Plural: plural, Span: raw.Span, NameSpan: raw.Name.Span}
			})
		})
	})
}

func (c *typeContext) plural(owner, name string, raw Located[string]) outcome.Optional[string] {
	form := DefaultPlural
	if raw.Set() {
		if raw.Get() == "" {
			return outcome.Empty[string](diag.Of(c.diags.EmptyArgument(owner, "plural", raw.Span))...)
		}
		form = raw.Get()
	}
	expanded := ExpandPlural(form, name)
	return outcome.TransformValue(outcome.ConditionalOne(isIdentifier(expanded), func() *diag.Diagnostic {
		return c.diags.InvalidPlural(form, expanded, raw.Span)
	}), expanded)
}

// reserve records the name of a successfully processed instance.
func reserve[T any](c *typeContext, o outcome.Optional[T], name func(T) string) outcome.Optional[T] {
	if v, ok := o.Get(); ok {
		c.names.Add(name(v))
	}
	return o
}

func (c *typeContext) fixed(raw RawFixed) outcome.Optional[Fixed] {
	o := outcome.Map(c.instance("fixed", raw.RawInstance), func(in Instance) Fixed { return Fixed{Instance: in} })
	return reserve(c, o, func(f Fixed) string { return f.Name })
}

// dependent validates the head and target shared by every dependent kind.
func (c *typeContext) dependent(kind resolve.Kind, raw RawInstance, target Located[string], targetArg string) outcome.Optional[Dependent] {
	return outcome.Then(c.instance(kind.String(), raw), func(in Instance) outcome.Optional[Dependent] {
		owner := fmt.Sprintf("%s unit instance %q", kind, in.Name)
		return outcome.Then(c.require(owner, targetArg, target, raw.Span), func(on string) outcome.Optional[Dependent] {
			v := outcome.ConditionalOne(on != in.Name, func() *diag.Diagnostic {
				return c.diags.SelfReference(in.Name, target.Span)
			})
			return outcome.TransformValue(v, Dependent{
				Entry: resolve.Entry{
					Name:              in.Name,
					DependsOn:         on,
					Kind:              kind,
					Location:          raw.Span,
					DependsOnLocation: target.Span,
				},
				Params: Params{Plural: in.Plural},
			})
		})
	})
}

func dependentName(d Dependent) string { return d.Name }

func (c *typeContext) alias(raw RawAlias) outcome.Optional[Dependent] {
	return reserve(c, c.dependent(resolve.Alias, raw.RawInstance, raw.AliasOf, "alias_of"), dependentName)
}

func (c *typeContext) scaled(raw RawScaled) outcome.Optional[Dependent] {
	o := c.dependent(resolve.Scaled, raw.RawInstance, raw.From, "from").Merge(func(d Dependent) outcome.Optional[Dependent] {
		owner := fmt.Sprintf("scaled unit instance %q", d.Name)
		return outcome.Then(c.require(owner, "scale", raw.Scale, raw.Span), func(src string) outcome.Optional[Dependent] {
			scale, err := Evaluate(src)
			if err == nil && scale == 0 {
				err = errors.New("scale must not be zero")
			}
			if err != nil {
				return outcome.Empty[Dependent](diag.Of(c.diags.InvalidScale(src, err, raw.Scale.Span))...)
			}
			d.Params.Scale, d.Params.ScaleExpr = scale, src
			return outcome.Present(d)
		})
	})
	return reserve(c, o, dependentName)
}

func (c *typeContext) prefixed(raw RawPrefixed) outcome.Optional[Dependent] {
	o := c.dependent(resolve.Prefixed, raw.RawInstance, raw.From, "from").Merge(func(d Dependent) outcome.Optional[Dependent] {
		metric, binary := raw.MetricPrefix, raw.BinaryPrefix
		v := outcome.ConditionalOne(metric.Set() || binary.Set(), func() *diag.Diagnostic {
			return c.diags.MissingPrefix(d.Name, raw.Span)
		}).Validate(func() outcome.Validity {
			return outcome.ConditionalOne(!(metric.Set() && binary.Set()), func() *diag.Diagnostic {
				return c.diags.AmbiguousPrefix(d.Name, binary.Span)
			})
		})
		return outcome.Merge(v, func() outcome.Optional[Dependent] {
			system, name := Metric, metric
			if binary.Set() {
				system, name = Binary, binary
			}
			prefix, ok := LookupPrefix(system, name.Get())
			if !ok {
				return outcome.Empty[Dependent](diag.Of(c.diags.UnrecognizedPrefix(system, name.Get(), name.Span))...)
			}
			d.Params.Prefix = prefix
			return outcome.Present(d)
		})
	})
	return reserve(c, o, dependentName)
}

func (c *typeContext) biased(raw RawBiased) outcome.Optional[Dependent] {
	v := outcome.ConditionalOne(c.biasTerm, func() *diag.Diagnostic {
		return c.diags.BiasTermMissing(c.unit, raw.Name.Get(), raw.Span)
	})
	o := outcome.Merge(v, func() outcome.Optional[Dependent] {
		return c.dependent(resolve.Biased, raw.RawInstance, raw.From, "from")
	}).Merge(func(d Dependent) outcome.Optional[Dependent] {
		owner := fmt.Sprintf("biased unit instance %q", d.Name)
		return outcome.Then(c.require(owner, "bias", raw.Bias, raw.Span), func(src string) outcome.Optional[Dependent] {
			bias, err := Evaluate(src)
			if err != nil {
				return outcome.Empty[Dependent](diag.Of(c.diags.InvalidBias(src, err, raw.Bias.Span))...)
			}
			d.Params.Bias, d.Params.BiasExpr = bias, src
			return outcome.Present(d)
		})
	})
	return reserve(c, o, dependentName)
}

func (c *typeContext) derived(raw RawDerived) outcome.Optional[Derived] {
	o := outcome.Then(c.instance("derived", raw.RawInstance), func(in Instance) outcome.Optional[Derived] {
		owner := fmt.Sprintf("derived unit instance %q", in.Name)
		if !raw.Units.Given {
			return outcome.Empty[Derived](diag.Of(c.diags.MissingArgument(owner, "units", raw.Span))...)
		}
		policy := itemlist.DefaultPolicy()
		policy.EmptyIsFatal = true
		return outcome.Map(c.identifierList(policy, owner, "units", raw.Units), func(units itemlist.List[string]) Derived {
			spans := make([]source.Span, len(units.Locations))
			for i, loc := range units.Locations {
				spans[i] = raw.Units.itemSpan(loc)
			}
			return Derived{
				Instance:     in,
				DerivationID: raw.DerivationID.Get(),
				Units:        units.Items,
				UnitSpans:    spans,
				IDSpan:       raw.DerivationID.Span,
			}
		})
	})
	return reserve(c, o, func(d Derived) string { return d.Name })
}

// identifierList processes a list of names, dropping nulls and invalid names.
func (c *typeContext) identifierList(policy itemlist.Policy, owner, arg string, list List[string]) outcome.Optional[itemlist.List[string]] {
	upgrade := func(def listDef, item *string, index int) outcome.Optional[string] {
		return outcome.TransformValue(outcome.ConditionalOne(isIdentifier(*item), func() *diag.Diagnostic {
			return c.diags.InvalidName(*item, def.item(index))
		}), *item)
	}
	p := itemlist.NewProcessor(policy, itemlist.Diagnostics[listDef](c.diags), upgrade, itemlist.ProduceList[listDef, string])
	return p.Process(listDef{owner: owner, arg: arg, list: list}, list.Items)
}
