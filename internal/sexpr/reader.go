// Package sexpr reads a minimal textual s-expression notation directly
// into ast.Expr trees, for tests, the one-shot CLI and documentation
// examples. It is explicitly not the language's real reader: a full
// textual tokenizer and parser (string/comment syntax, diagnostics,
// incremental parsing) is a separate concern from this package's narrow
// job of getting source text into an ast.Expr tree for testing and
// tooling purposes.
package sexpr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/marcusklaas/lisp-parsers/lang/ast"
	"github.com/marcusklaas/lisp-parsers/lang/types"
)

// Read parses a single expression from src. Trailing input after the
// expression is ignored, but a second expression may be read by calling
// Read again with the source that follows, once ReadAll's splitting is not
// needed.
func Read(src string) (ast.Expr, error) {
	toks := tokenize(src)
	p := &parser{toks: toks}
	e, err := p.readExpr()
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ReadAll parses every top-level expression in src, e.g. a sequence of
// (define ...) forms followed by a final expression to evaluate.
func ReadAll(src string) ([]ast.Expr, error) {
	toks := tokenize(src)
	p := &parser{toks: toks}
	var out []ast.Expr
	for !p.atEnd() {
		e, err := p.readExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *parser) readExpr() (ast.Expr, error) {
	if p.atEnd() {
		return nil, fmt.Errorf("sexpr: unexpected end of input")
	}
	tok := p.toks[p.pos]
	p.pos++

	switch tok {
	case "(":
		var items []ast.Expr
		for {
			if p.atEnd() {
				return nil, fmt.Errorf("sexpr: unterminated list")
			}
			if p.toks[p.pos] == ")" {
				p.pos++
				return &ast.CallExpr{Items: items}, nil
			}
			e, err := p.readExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, e)
		}
	case ")":
		return nil, fmt.Errorf("sexpr: unexpected )")
	case "#t":
		return &ast.ValueExpr{Val: types.True}, nil
	case "#f":
		return &ast.ValueExpr{Val: types.False}, nil
	default:
		if n, err := strconv.ParseUint(tok, 10, 64); err == nil {
			return &ast.ValueExpr{Val: types.Int(n)}, nil
		}
		if kind, ok := ast.LookupMacro(tok); ok {
			return &ast.MacroExpr{Kind: kind}, nil
		}
		return &ast.OpVarExpr{Name: tok}, nil
	}
}

// tokenize splits src into parens and whitespace-delimited atoms. There is
// no string or comment syntax in the language, so this is deliberately
// trivial compared to a real scanner.
func tokenize(src string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range src {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}
