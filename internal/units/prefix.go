package units

import "math"

// PrefixSystem distinguishes metric (powers of ten) from binary (powers of 1024) prefixes.
type PrefixSystem uint8

const (
	Metric PrefixSystem = iota + 1
	Binary
)

func (s PrefixSystem) String() string {
	switch s {
	case Metric:
		return "metric"
	case Binary:
		return "binary"
	}
	return "none"
}

type Prefix struct {
	System PrefixSystem
	Name   string
	Factor float64
}

var metricPrefixes = map[string]float64{
	"Quetta":   1e30,
	"Ronna":    1e27,
	"Yotta":    1e24,
	"Zetta":    1e21,
	"Exa":      1e18,
	"Peta":     1e15,
	"Tera":     1e12,
	"Giga":     1e9,
	"Mega":     1e6,
	"Kilo":     1e3,
	"Hecto":    1e2,
	"Deca":     1e1,
	"Identity": 1,
	"Zero":     0,
	"Deci":     1e-1,
	"Centi":    1e-2,
	"Milli":    1e-3,
	"Micro":    1e-6,
	"Nano":     1e-9,
	"Pico":     1e-12,
	"Femto":    1e-15,
	"Atto":     1e-18,
	"Zepto":    1e-21,
	"Yocto":    1e-24,
	"Ronto":    1e-27,
	"Quecto":   1e-30,
}

var binaryPrefixes = map[string]float64{
	"Yobi":     math.Pow(1024, 8),
	"Zebi":     math.Pow(1024, 7),
	"Exbi":     math.Pow(1024, 6),
	"Pebi":     math.Pow(1024, 5),
	"Tebi":     math.Pow(1024, 4),
	"Gibi":     math.Pow(1024, 3),
	"Mebi":     math.Pow(1024, 2),
	"Kibi":     1024,
	"Identity": 1,
	"Zero":     0,
}

// LookupPrefix finds a named prefix of system.
func LookupPrefix(system PrefixSystem, name string) (Prefix, bool) {
	table := metricPrefixes
	if system == Binary {
		table = binaryPrefixes
	}
	factor, ok := table[name]
	if !ok {
		return Prefix{}, false
	}
	return Prefix{System: system, Name: name, Factor: factor}, true
}
