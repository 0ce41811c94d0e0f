// Package typeexpr parses textual type expressions and definition scripts in
// the same syntax typeprint renders, feeding the store through its public
// constructors.
//
// A script is a sequence of definitions:
//
//	%list = type { i32, %list* }
//	%cb   = type void (%list*, ...)
//
// Referencing a %name before its definition creates an opaque placeholder;
// the definition later refines it in place, which is exactly how recursive
// and mutually-recursive shapes are meant to be built.
package typeexpr

import (
	"fmt"
	"sort"
	"strconv"

	"fortio.org/safecast"

	"github.com/th3flyboy/llvm-mirror/internal/types"
)

// Parser builds types from source text into a Context and SymbolTable.
type Parser struct {
	ctx      *types.Context
	st       *types.SymbolTable
	lx       *lexer
	tok      token
	forwards map[string]types.TypeID
}

// NewParser returns a parser binding names into st and types into ctx.
func NewParser(ctx *types.Context, st *types.SymbolTable) *Parser {
	return &Parser{
		ctx:      ctx,
		st:       st,
		forwards: make(map[string]types.TypeID),
	}
}

// ParseScript processes a whole definition script. Every defined name ends up
// in the symbol table; a name referenced but never defined is an error.
func (p *Parser) ParseScript(src string) error {
	p.lx = newLexer(src)
	if err := p.advance(); err != nil {
		return err
	}
	for p.tok.kind != tokEOF {
		if err := p.parseDef(); err != nil {
			return err
		}
	}
	if len(p.forwards) > 0 {
		names := make([]string, 0, len(p.forwards))
		for name := range p.forwards {
			names = append(names, "%"+name)
		}
		sort.Strings(names)
		return fmt.Errorf("referenced but never defined: %v", names)
	}
	return nil
}

// ParseType parses a single type expression against an existing context and
// symbol table. Unlike scripts, expressions may not introduce forward
// references.
func ParseType(ctx *types.Context, st *types.SymbolTable, src string) (types.TypeID, error) {
	p := NewParser(ctx, st)
	p.lx = newLexer(src)
	if err := p.advance(); err != nil {
		return types.NoTypeID, err
	}
	id, err := p.parseType()
	if err != nil {
		return types.NoTypeID, err
	}
	if p.tok.kind != tokEOF {
		return types.NoTypeID, fmt.Errorf("line %d: trailing input after type: %s", p.tok.line, p.tok)
	}
	if len(p.forwards) > 0 {
		return types.NoTypeID, fmt.Errorf("type expression may not forward-reference undefined names")
	}
	return id, nil
}

func (p *Parser) advance() error {
	tok, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expectPunct(s string) error {
	if p.tok.kind != tokPunct || p.tok.text != s {
		return fmt.Errorf("line %d: expected %q, got %s", p.tok.line, s, p.tok)
	}
	return p.advance()
}

func (p *Parser) parseDef() error {
	if p.tok.kind != tokName {
		return fmt.Errorf("line %d: expected %%name to open a definition, got %s", p.tok.line, p.tok)
	}
	name := p.tok.text
	line := p.tok.line
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectPunct("="); err != nil {
		return err
	}
	if p.tok.kind != tokIdent || p.tok.text != "type" {
		return fmt.Errorf("line %d: expected 'type' keyword, got %s", p.tok.line, p.tok)
	}
	if err := p.advance(); err != nil {
		return err
	}
	id, err := p.parseType()
	if err != nil {
		return err
	}
	return p.define(name, id, line)
}

func (p *Parser) define(name string, id types.TypeID, line int) error {
	if fwd, ok := p.forwards[name]; ok {
		delete(p.forwards, name)
		if err := p.ctx.RefineAbstractTypeTo(fwd, id); err != nil {
			return fmt.Errorf("line %d: %%%s: %w", line, name, err)
		}
		return nil
	}
	if _, bound := p.st.Lookup(name); bound {
		return fmt.Errorf("line %d: redefinition of %%%s", line, name)
	}
	p.st.Insert(name, id)
	return nil
}

// parseType parses a base type followed by any number of postfix suffixes:
// '*' for pointers and '(...)' for function types returning the prefix.
func (p *Parser) parseType() (types.TypeID, error) {
	id, err := p.parseBase()
	if err != nil {
		return types.NoTypeID, err
	}
	for p.tok.kind == tokPunct {
		switch p.tok.text {
		case "*":
			line := p.tok.line
			if err := p.advance(); err != nil {
				return types.NoTypeID, err
			}
			id, err = p.ctx.PointerType(id)
			if err != nil {
				return types.NoTypeID, fmt.Errorf("line %d: %w", line, err)
			}
		case "(":
			id, err = p.parseFunctionSuffix(id)
			if err != nil {
				return types.NoTypeID, err
			}
		default:
			return id, nil
		}
	}
	return id, nil
}

func (p *Parser) parseFunctionSuffix(ret types.TypeID) (types.TypeID, error) {
	line := p.tok.line
	if err := p.advance(); err != nil { // consume '('
		return types.NoTypeID, err
	}
	var params []types.TypeID
	variadic := false
	for !(p.tok.kind == tokPunct && p.tok.text == ")") {
		if len(params) > 0 || variadic {
			if err := p.expectPunct(","); err != nil {
				return types.NoTypeID, err
			}
		}
		if p.tok.kind == tokEllipsis {
			variadic = true
			if err := p.advance(); err != nil {
				return types.NoTypeID, err
			}
			break
		}
		param, err := p.parseType()
		if err != nil {
			return types.NoTypeID, err
		}
		params = append(params, param)
	}
	if err := p.expectPunct(")"); err != nil {
		return types.NoTypeID, err
	}
	id, err := p.ctx.FunctionType(ret, params, variadic, nil)
	if err != nil {
		return types.NoTypeID, fmt.Errorf("line %d: %w", line, err)
	}
	return id, nil
}

func (p *Parser) parseBase() (types.TypeID, error) {
	b := p.ctx.Builtins()
	line := p.tok.line
	switch p.tok.kind {
	case tokIdent:
		var id types.TypeID
		switch p.tok.text {
		case "void":
			id = b.Void
		case "float":
			id = b.Float
		case "double":
			id = b.Double
		case "label":
			id = b.Label
		case "opaque":
			id = p.ctx.OpaqueType()
		default:
			return types.NoTypeID, fmt.Errorf("line %d: unknown type name %q", line, p.tok.text)
		}
		return id, p.advance()
	case tokIntType:
		width, err := strconv.ParseUint(p.tok.text[1:], 10, 32)
		if err != nil {
			return types.NoTypeID, fmt.Errorf("line %d: bad integer width %q", line, p.tok.text)
		}
		w, err := safecast.Conv[uint32](width)
		if err != nil {
			return types.NoTypeID, fmt.Errorf("line %d: %w", line, err)
		}
		id, err := p.ctx.IntegerType(w)
		if err != nil {
			return types.NoTypeID, fmt.Errorf("line %d: %w", line, err)
		}
		return id, p.advance()
	case tokName:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return types.NoTypeID, err
		}
		if id, ok := p.st.Lookup(name); ok {
			return id, nil
		}
		fwd := p.ctx.OpaqueType()
		p.st.Insert(name, fwd)
		p.forwards[name] = fwd
		return fwd, nil
	case tokPunct:
		switch p.tok.text {
		case "[":
			return p.parseArray()
		case "<":
			return p.parseAngle()
		case "{":
			return p.parseStruct(false)
		}
	}
	return types.NoTypeID, fmt.Errorf("line %d: expected a type, got %s", line, p.tok)
}

func (p *Parser) parseArray() (types.TypeID, error) {
	line := p.tok.line
	if err := p.advance(); err != nil { // consume '['
		return types.NoTypeID, err
	}
	count, err := p.parseCount()
	if err != nil {
		return types.NoTypeID, err
	}
	elem, err := p.parseType()
	if err != nil {
		return types.NoTypeID, err
	}
	if err := p.expectPunct("]"); err != nil {
		return types.NoTypeID, err
	}
	id, err := p.ctx.ArrayType(elem, count)
	if err != nil {
		return types.NoTypeID, fmt.Errorf("line %d: %w", line, err)
	}
	return id, nil
}

// parseAngle handles both vectors "<4 x i32>" and packed structs "<{ ... }>".
func (p *Parser) parseAngle() (types.TypeID, error) {
	line := p.tok.line
	if err := p.advance(); err != nil { // consume '<'
		return types.NoTypeID, err
	}
	if p.tok.kind == tokPunct && p.tok.text == "{" {
		id, err := p.parseStruct(true)
		if err != nil {
			return types.NoTypeID, err
		}
		if err := p.expectPunct(">"); err != nil {
			return types.NoTypeID, err
		}
		return id, nil
	}
	count, err := p.parseCount()
	if err != nil {
		return types.NoTypeID, err
	}
	elem, err := p.parseType()
	if err != nil {
		return types.NoTypeID, err
	}
	if err := p.expectPunct(">"); err != nil {
		return types.NoTypeID, err
	}
	n, err := safecast.Conv[uint32](count)
	if err != nil {
		return types.NoTypeID, fmt.Errorf("line %d: vector length: %w", line, err)
	}
	id, err := p.ctx.VectorType(elem, n)
	if err != nil {
		return types.NoTypeID, fmt.Errorf("line %d: %w", line, err)
	}
	return id, nil
}

// parseCount reads "N x" inside array and vector forms.
func (p *Parser) parseCount() (uint64, error) {
	if p.tok.kind != tokNumber {
		return 0, fmt.Errorf("line %d: expected element count, got %s", p.tok.line, p.tok)
	}
	count, err := strconv.ParseUint(p.tok.text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: bad element count %q", p.tok.line, p.tok.text)
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	if p.tok.kind != tokIdent || p.tok.text != "x" {
		return 0, fmt.Errorf("line %d: expected 'x' after element count, got %s", p.tok.line, p.tok)
	}
	return count, p.advance()
}

func (p *Parser) parseStruct(packed bool) (types.TypeID, error) {
	line := p.tok.line
	if err := p.advance(); err != nil { // consume '{'
		return types.NoTypeID, err
	}
	var fields []types.TypeID
	for !(p.tok.kind == tokPunct && p.tok.text == "}") {
		if len(fields) > 0 {
			if err := p.expectPunct(","); err != nil {
				return types.NoTypeID, err
			}
		}
		field, err := p.parseType()
		if err != nil {
			return types.NoTypeID, err
		}
		fields = append(fields, field)
	}
	if err := p.advance(); err != nil { // consume '}'
		return types.NoTypeID, err
	}
	id, err := p.ctx.StructType(fields, packed)
	if err != nil {
		return types.NoTypeID, fmt.Errorf("line %d: %w", line, err)
	}
	return id, nil
}
