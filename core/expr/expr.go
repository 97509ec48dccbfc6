// Package expr parses rate-law expressions and extracts the symbols they
// reference. The grammar covers identifiers, numeric literals, the +, -, *,
// / and ^ operators, parentheses and function calls.
package expr

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Expression is a sum of terms.
type Expression struct {
	Left *Term     `parser:"@@"`
	Rest []*OpTerm `parser:"@@*"`
}

// OpTerm is an additive operator followed by its term.
type OpTerm struct {
	Op   string `parser:"@('+' | '-')"`
	Term *Term  `parser:"@@"`
}

// Term is a product of powers.
type Term struct {
	Left *Power     `parser:"@@"`
	Rest []*OpPower `parser:"@@*"`
}

// OpPower is a multiplicative operator followed by its operand.
type OpPower struct {
	Op    string `parser:"@('*' | '/')"`
	Power *Power `parser:"@@"`
}

// Power is a base with an optional right-associative exponent.
type Power struct {
	Base *Unary `parser:"@@"`
	Exp  *Power `parser:"( '^' @@ )?"`
}

// Unary is an optionally negated primary.
type Unary struct {
	Neg   bool     `parser:"@'-'?"`
	Value *Primary `parser:"@@"`
}

// Primary is a literal, a function call, an identifier or a parenthesized
// subexpression.
type Primary struct {
	Number *float64    `parser:"  @Number"`
	Call   *Call       `parser:"| @@"`
	Ident  *string     `parser:"| @Ident"`
	Sub    *Expression `parser:"| '(' @@ ')'"`
}

// Call is a named function application. The function name is not a symbol.
type Call struct {
	Name string        `parser:"@Ident '('"`
	Args []*Expression `parser:"( @@ ( ',' @@ )* )? ')'"`
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[-+*/^(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[Expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse builds the syntax tree of an expression.
func Parse(input string) (*Expression, error) {
	ast, err := exprParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", input, err)
	}
	return ast, nil
}

// Symbols returns the distinct identifiers an expression references, in
// order of first appearance. Function names do not count as symbols; their
// arguments do.
func Symbols(input string) ([]string, error) {
	ast, err := Parse(input)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	collect := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	walkExpression(ast, collect)
	return out, nil
}

func walkExpression(e *Expression, collect func(string)) {
	if e == nil {
		return
	}
	walkTerm(e.Left, collect)
	for _, ot := range e.Rest {
		walkTerm(ot.Term, collect)
	}
}

func walkTerm(t *Term, collect func(string)) {
	if t == nil {
		return
	}
	walkPower(t.Left, collect)
	for _, op := range t.Rest {
		walkPower(op.Power, collect)
	}
}

func walkPower(p *Power, collect func(string)) {
	if p == nil {
		return
	}
	if p.Base != nil {
		walkPrimary(p.Base.Value, collect)
	}
	walkPower(p.Exp, collect)
}

func walkPrimary(p *Primary, collect func(string)) {
	if p == nil {
		return
	}
	switch {
	case p.Ident != nil:
		collect(*p.Ident)
	case p.Call != nil:
		for _, arg := range p.Call.Args {
			walkExpression(arg, collect)
		}
	case p.Sub != nil:
		walkExpression(p.Sub, collect)
	}
}
