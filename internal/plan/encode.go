package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects a plan encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatTOML    Format = "toml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatMsgpack, FormatTOML}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported plan format %q (must be json, msgpack or toml)", s)
}

// Encode writes p to w in format f.
func Encode(w io.Writer, p *Plan, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		return enc.Encode(p)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(p)
	}
	return fmt.Errorf("unsupported plan format %q", f)
}

// Decode reads a plan written by Encode.
func Decode(r io.Reader, f Format) (*Plan, error) {
	var p Plan
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&p)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&p)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&p)
	default:
		err = fmt.Errorf("unsupported plan format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s plan: %w", f, err)
	}
	return &p, nil
}
