package types

import (
	"math/big"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"solir/internal/errors"
)

// Type expressions are the textual spellings analyses hand us: state
// variable types from metadata, using-for receiver types, CLI input.
// The grammar covers elementary names, qualified user-defined names,
// array suffixes and function types:
//
//	uint256    bytes32[4][]    Lib.Entry[]    function(uint256) returns(bool)

var typeLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"Punctuation", `[\[\](),.]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

type typeExpr struct {
	Base     *baseTypeExpr  `@@`
	Suffixes []*arraySuffix `@@*`
}

type baseTypeExpr struct {
	Function *functionTypeExpr `  @@`
	Named    *namedTypeExpr    `| @@`
}

type functionTypeExpr struct {
	Params  []*typeExpr `"function" "(" [ @@ { "," @@ } ] ")"`
	Returns []*typeExpr `[ "returns" "(" @@ { "," @@ } ")" ]`
}

type namedTypeExpr struct {
	Pos   lexer.Position
	Parts []string `@Ident { "." @Ident }`
}

type arraySuffix struct {
	Pos    lexer.Position
	Length *string `"[" [ @Integer ] "]"`
}

var typeParser = participle.MustBuild[typeExpr](
	participle.Lexer(typeLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseType parses a Solidity type expression, resolving user-defined
// names against the registry. Malformed expressions and unknown names
// come back as recoverable AnalysisErrors.
func ParseType(expr string, reg *Registry) (Type, error) {
	node, err := typeParser.ParseString("", expr)
	if err != nil {
		if pe, ok := err.(participle.Error); ok {
			return nil, errors.TypeExprSyntax(pe.Message(), toPosition(pe.Position()))
		}
		return nil, errors.TypeExprSyntax(err.Error(), errors.Position{})
	}
	return node.resolve(reg)
}

func (t *typeExpr) resolve(reg *Registry) (Type, error) {
	resolved, err := t.Base.resolve(reg)
	if err != nil {
		return nil, err
	}
	for _, suffix := range t.Suffixes {
		if suffix.Length == nil {
			resolved = NewArrayType(resolved, nil)
			continue
		}
		length, ok := new(big.Int).SetString(*suffix.Length, 0)
		if !ok || length.Sign() <= 0 {
			return nil, errors.InvalidArrayLength(*suffix.Length, toPosition(suffix.Pos))
		}
		resolved = NewArrayType(resolved, length)
	}
	return resolved, nil
}

func (b *baseTypeExpr) resolve(reg *Registry) (Type, error) {
	if b.Function != nil {
		return b.Function.resolve(reg)
	}
	return b.Named.resolve(reg)
}

func (f *functionTypeExpr) resolve(reg *Registry) (Type, error) {
	params, err := resolveAll(f.Params, reg)
	if err != nil {
		return nil, err
	}
	returns, err := resolveAll(f.Returns, reg)
	if err != nil {
		return nil, err
	}
	return NewFunctionType(params, returns), nil
}

func resolveAll(exprs []*typeExpr, reg *Registry) ([]Type, error) {
	resolved := make([]Type, len(exprs))
	for i, e := range exprs {
		t, err := e.resolve(reg)
		if err != nil {
			return nil, err
		}
		resolved[i] = t
	}
	return resolved, nil
}

func (n *namedTypeExpr) resolve(reg *Registry) (Type, error) {
	name := strings.Join(n.Parts, ".")

	if len(n.Parts) == 1 {
		if IsElementaryName(name) {
			return MustElementaryType(name), nil
		}
		if LooksElementary(name) {
			return nil, errors.InvalidElementaryType(name, toPosition(n.Pos))
		}
	}

	if resolved, ok := reg.Resolve(name); ok {
		return resolved, nil
	}
	return nil, errors.UnknownTypeName(name, toPosition(n.Pos), errors.FindSimilarNames(name, reg.Names()))
}

func toPosition(pos lexer.Position) errors.Position {
	return errors.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
