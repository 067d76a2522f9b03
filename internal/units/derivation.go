package units

import (
	"errors"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"quantgen/internal/derivexpr"
	"quantgen/internal/diag"
	"quantgen/internal/itemlist"
	"quantgen/internal/outcome"
	"quantgen/internal/source"
)

// innerSpan points at bytes [off, off+n) of a scalar argument. Quoted scalars
// are one byte longer on each side than their value.
func innerSpan(arg Located[string], off, n int) source.Span {
	if int(arg.Span.Len()) == len(arg.Get())+2 {
		off++
	}
	o, err := safecast.Conv[uint32](off)
	if err != nil {
		return arg.Span
	}
	l, err := safecast.Conv[uint32](n)
	if err != nil {
		return arg.Span
	}
	return arg.Span.Narrow(o, l)
}

func (c *typeContext) derivation(raw RawDerivation) outcome.Optional[Derivation] {
	owner := "derivation of " + c.unit
	id := raw.ID.Get()

	v := outcome.ConditionalOne(!c.biasTerm, func() *diag.Diagnostic {
		return c.diags.BiasTermNotAllowed(c.unit, raw.Span)
	}).Validate(func() outcome.Validity {
		return outcome.ConditionalOne(id != "" || !c.multipleDerivations, func() *diag.Diagnostic {
			return c.diags.MultipleDerivationsWithoutID(c.unit, raw.Span)
		})
	}).Validate(func() outcome.Validity {
		return outcome.ConditionalOne(id == "" || !c.derivationIDs.Has(id), func() *diag.Diagnostic {
			return c.diags.DuplicateDerivationID(id, raw.ID.Span)
		})
	})

	expression := outcome.Then(outcome.Merge(v, func() outcome.Optional[string] {
		return c.require(owner, "expression", raw.Expression, raw.Span)
	}), func(src string) outcome.Optional[*derivexpr.Expression] {
		e, err := derivexpr.Parse(src)
		if err != nil {
			sp := raw.Expression.Span
			var syn *derivexpr.SyntaxError
			if errors.As(err, &syn) {
				sp = innerSpan(raw.Expression, syn.Offset, 1)
			}
			return outcome.Empty[*derivexpr.Expression](diag.Of(c.diags.InvalidDerivationExpression(src, err, sp))...)
		}
		return outcome.Present(e)
	})

	o := outcome.Then(expression, func(e *derivexpr.Expression) outcome.Optional[Derivation] {
		return outcome.Then(c.signature(owner, raw), func(sig itemlist.List[string]) outcome.Optional[Derivation] {
			spans := make([]source.Span, len(sig.Locations))
			for i, loc := range sig.Locations {
				spans[i] = raw.Signature.itemSpan(loc)
			}
			d := Derivation{
				ID:             id,
				Expression:     e,
				Signature:      sig.Items,
				SignatureSpans: spans,
				Permutations:   raw.Permutations.Get(),
				Span:           raw.Span,
			}
			check := c.placeholders(raw, d).
				Validate(func() outcome.Validity { return c.permutations(raw, d) }).
				Validate(func() outcome.Validity {
					return outcome.ConditionalOne(!c.signatures.Has(signatureKey(d.Signature)), func() *diag.Diagnostic {
						return c.diags.DuplicateDerivationSignature(d.Signature, raw.Signature.Span)
					})
				})
			return outcome.TransformValue(check, d)
		})
	})

	if d, ok := o.Get(); ok {
		if d.ID != "" {
			c.derivationIDs.Add(d.ID)
		}
		c.signatures.Add(signatureKey(d.Signature))
	}
	return o
}

func signatureKey(signature []string) string {
	return strings.Join(signature, "\x00")
}

// signature requires every element to survive; partial signatures are dropped
// after their item diagnostics are reported.
func (c *typeContext) signature(owner string, raw RawDerivation) outcome.Optional[itemlist.List[string]] {
	if !raw.Signature.Given {
		return outcome.Empty[itemlist.List[string]](diag.Of(c.diags.MissingArgument(owner, "signature", raw.Span))...)
	}
	policy := itemlist.DefaultPolicy()
	policy.EmptyIsFatal = true
	return c.identifierList(policy, owner, "signature", raw.Signature).Validate(func(sig itemlist.List[string]) outcome.Validity {
		return outcome.Conditional(len(sig.Items) == len(raw.Signature.Items), nil)
	})
}

func (c *typeContext) placeholders(raw RawDerivation, d Derivation) outcome.Validity {
	arity := len(d.Signature)
	for _, p := range d.Expression.Placeholders {
		if p.Index >= arity {
			return outcome.Invalid(diag.Of(c.diags.UnmatchedPlaceholder(p.Index, arity,
				innerSpan(raw.Expression, p.Pos.Offset, len(strconv.Itoa(p.Index))+2)))...)
		}
	}
	var missing []*diag.Diagnostic
	for i, element := range d.Signature {
		if !d.Expression.Uses(i) {
			missing = append(missing, c.diags.UnusedSignatureElement(i, element, d.SignatureSpans[i]))
		}
	}
	if len(missing) > 0 {
		return outcome.Invalid(diag.Of(missing...)...)
	}
	return outcome.Valid()
}

func (c *typeContext) permutations(raw RawDerivation, d Derivation) outcome.Validity {
	redundant := raw.Permutations.Set() && raw.Permutations.Get() && allSame(d.Signature)
	return outcome.WarnIf(redundant, func() *diag.Diagnostic {
		return c.diags.RedundantPermutations(raw.Permutations.Span)
	})
}

// allSame is also true for single-element signatures.
func allSame(signature []string) bool {
	if len(signature) == 0 {
		return false
	}
	for _, s := range signature[1:] {
		if s != signature[0] {
			return false
		}
	}
	return true
}
