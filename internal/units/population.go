package units

import (
	"quantgen/internal/diag"
	"quantgen/internal/itemlist"
	"quantgen/internal/outcome"
)

// Population indexes every processed unit type by name so that validation
// can check references across types.
type Population struct {
	units     []UnitType
	byName    map[string]int
	instances map[string]itemlist.Set[string]
}

// BuildPopulation keeps the first declaration of each unit type name and
// reports the others.
func (p *Processor) BuildPopulation(types []UnitType) outcome.Result[*Population] {
	pop := &Population{
		units:     make([]UnitType, 0, len(types)),
		byName:    make(map[string]int, len(types)),
		instances: make(map[string]itemlist.Set[string], len(types)),
	}
	var ds []*diag.Diagnostic
	for _, u := range types {
		if _, dup := pop.byName[u.Name]; dup {
			ds = append(ds, p.diags.DuplicateUnitType(u.Name, u.Span))
			continue
		}
		pop.byName[u.Name] = len(pop.units)
		pop.units = append(pop.units, u)
		names := itemlist.Set[string]{}
		for _, n := range u.InstanceNames() {
			names.Add(n)
		}
		pop.instances[u.Name] = names
	}
	return outcome.NewResult(pop, diag.Of(ds...)...)
}

// Units returns the accepted unit types in declaration order.
func (pop *Population) Units() []UnitType {
	return pop.units
}

func (pop *Population) Lookup(unit string) (*UnitType, bool) {
	i, ok := pop.byName[unit]
	if !ok {
		return nil, false
	}
	return &pop.units[i], true
}

// HasInstance reports whether unit declares an instance called name.
func (pop *Population) HasInstance(unit, name string) bool {
	return pop.instances[unit].Has(name)
}
