package derivexpr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Expr is a flat chain of terms joined by binary operators. Precedence is
// irrelevant for placeholder analysis and rendering keeps the source order.
type Expr struct {
	Pos  lexer.Position
	Head *Term     `parser:"@@"`
	Tail []*OpTerm `parser:"@@*"`
}

type OpTerm struct {
	Op   string `parser:"@Operator"`
	Term *Term  `parser:"@@"`
}

type Term struct {
	Pos         lexer.Position
	Negated     bool         `parser:"@'-'?"`
	Placeholder *Placeholder `parser:"( @@"`
	Number      *string      `parser:"| @(Float | Int)"`
	Ident       *string      `parser:"| @Ident"`
	Group       *Expr        `parser:"| '(' @@ ')' )"`
}

// Placeholder is "{i}", standing for the i-th element of the signature.
type Placeholder struct {
	Pos   lexer.Position
	Index int `parser:"'{' @Int '}'"`
}

var exprLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `\s+`, Action: nil},
		{Name: "Float", Pattern: `\d+\.\d+`, Action: nil},
		{Name: "Int", Pattern: `\d+`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Operator", Pattern: `[-+*/^]`, Action: nil},
		{Name: "Punct", Pattern: `[{}()]`, Action: nil},
	},
})

var parser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.UseLookahead(2),
	participle.Elide("Whitespace"),
)
