// Package parser builds FEEL syntax trees with a recursive-descent
// parser. Grammar per the DMN specification,
// https://www.omg.org/spec/DMN/1.2/PDF.
//
// FEEL names may contain spaces and arithmetic operator characters, so
// identifier parsing is a backtracking search for the longest token
// run that is either free of operators and keywords or currently bound in the consulted
// environment. The parser therefore takes an EnvProbe — implemented by
// the evaluation engine — instead of working purely syntactically.
package parser

import (
	"fmt"
	"strings"

	"github.com/dmnkit/go-feel/ast"
	"github.com/dmnkit/go-feel/scanner"
)

// Top selects the grammar entry point.
type Top int

const (
	// TopExpression parses a single expression.
	TopExpression Top = iota
	// TopUnaryTests parses a comma-separated list of unary tests, the
	// form used by decision-table input entries.
	TopUnaryTests
)

// EnvProbe answers whether a (possibly multi-word) name is currently
// bound. The evaluation engine implements it.
type EnvProbe interface {
	HasName(name string) bool
}

// Parser is a recursive-descent parser over a token scanner.
type Parser struct {
	scanner *scanner.Scanner
	probe   EnvProbe
}

// NewParser creates a parser for the input, consulting the probe
// during identifier resolution.
func NewParser(input string, probe EnvProbe) *Parser {
	return &Parser{scanner: scanner.NewScanner(input), probe: probe}
}

// Parse parses the input with the chosen entry point.
func Parse(input string, probe EnvProbe, top Top) (ast.Node, error) {
	return NewParser(input, probe).Parse(top)
}

// Parse runs the selected entry point.
func (p *Parser) Parse(top Top) (ast.Node, error) {
	if err := p.goAhead(); err != nil {
		return nil, err
	}
	if top == TopUnaryTests {
		return p.parseUnaryTests()
	}
	return p.parseExpression()
}

func (p *Parser) goAhead() error {
	return p.scanner.NextToken()
}

func (p *Parser) unexpected(expects string) error {
	return newParseError(
		fmt.Sprintf("unexpected token %s, expect %s", p.scanner.Current().Kind, expects),
		p.scanner.Current().Position)
}

func (p *Parser) unexpectedKeyword(expects string) error {
	return newParseError(
		fmt.Sprintf("unexpected keyword %s, expect %s", p.scanner.Current().Value, expects),
		p.scanner.Current().Position)
}

var comparatorKinds = []scanner.Kind{">", ">=", "<", "<=", "!=", "="}

func (p *Parser) parseUnaryTests() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	elem, err := p.parseUnaryTest()
	if err != nil {
		return nil, err
	}
	tests := []ast.Node{elem}
	for p.scanner.Expect(",") {
		if err := p.goAhead(); err != nil {
			return nil, err
		}
		elem, err := p.parseUnaryTest()
		if err != nil {
			return nil, err
		}
		tests = append(tests, elem)
	}
	return &ast.UnaryTests{Tests: tests, Pos: startPos}, nil
}

// parseUnaryTest parses one decision-table test: a prefix comparator
// applied to the implicit input, or a plain expression. Literal-shaped
// expressions become equality tests against the input.
func (p *Parser) parseUnaryTest() (ast.Node, error) {
	if p.scanner.ExpectKinds(comparatorKinds...) {
		op := string(p.scanner.Current().Kind)
		if err := p.goAhead(); err != nil {
			return nil, err
		}
		startPos := p.scanner.Current().Position
		right, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryTest{Op: op, Right: right, Pos: startPos}, nil
	}

	startPos := p.scanner.Current().Position
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	switch right.(type) {
	case *ast.Var, *ast.NumberNode, *ast.StringNode, *ast.Ident,
		*ast.NullNode, *ast.BoolNode, *ast.TemporalNode, *ast.Neg:
		return &ast.UnaryTest{Op: "=", Right: right, Pos: startPos}, nil
	default:
		return right, nil
	}
}

func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseInOp((*Parser).parseLogicOr)
}

func (p *Parser) parseInOp(sub func(*Parser) (ast.Node, error)) (ast.Node, error) {
	startPos := p.scanner.Current().Position
	left, err := sub(p)
	if err != nil {
		return nil, err
	}
	for p.scanner.ExpectKeyword("in") {
		if err := p.goAhead(); err != nil {
			return nil, err
		}
		right, err := sub(p)
		if err != nil {
			return nil, err
		}
		left = &ast.InOp{Left: left, Right: right, Pos: startPos}
		startPos = p.scanner.Current().Position
	}
	return left, nil
}

func (p *Parser) parseBinopKinds(kinds []scanner.Kind, sub func(*Parser) (ast.Node, error)) (ast.Node, error) {
	startPos := p.scanner.Current().Position
	left, err := sub(p)
	if err != nil {
		return nil, err
	}
	for p.scanner.ExpectKinds(kinds...) {
		op := p.scanner.Current().Value
		if err := p.goAhead(); err != nil {
			return nil, err
		}
		right, err := sub(p)
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Pos: startPos}
		startPos = p.scanner.Current().Position
	}
	return left, nil
}

func (p *Parser) parseLogicopKeywords(keywords []string, sub func(*Parser) (ast.Node, error)) (ast.Node, error) {
	startPos := p.scanner.Current().Position
	left, err := sub(p)
	if err != nil {
		return nil, err
	}
	for p.scanner.ExpectKeywords(keywords...) {
		op := p.scanner.Current().Value
		if err := p.goAhead(); err != nil {
			return nil, err
		}
		right, err := sub(p)
		if err != nil {
			return nil, err
		}
		left = &ast.LogicOp{Op: op, Left: left, Right: right, Pos: startPos}
		startPos = p.scanner.Current().Position
	}
	return left, nil
}

func (p *Parser) parseLogicOr() (ast.Node, error) {
	return p.parseLogicopKeywords([]string{"or"}, (*Parser).parseLogicAnd)
}

func (p *Parser) parseLogicAnd() (ast.Node, error) {
	return p.parseLogicopKeywords([]string{"and"}, (*Parser).parseCompare)
}

func (p *Parser) parseCompare() (ast.Node, error) {
	return p.parseBinopKinds(comparatorKinds, (*Parser).parseAddOrSub)
}

func (p *Parser) parseAddOrSub() (ast.Node, error) {
	return p.parseBinopKinds([]scanner.Kind{"+", "-"}, (*Parser).parseMulOrDiv)
}

func (p *Parser) parseMulOrDiv() (ast.Node, error) {
	return p.parseBinopKinds([]scanner.Kind{"*", "/", "%"}, (*Parser).parseFunccallOrIndexOrDot)
}

func (p *Parser) parseFunccallOrIndexOrDot() (ast.Node, error) {
	node, err := p.parseSingleElement()
	if err != nil {
		return nil, err
	}
	for {
		switch p.scanner.Current().Kind {
		case "(":
			node, err = p.parseFuncCallRest(node)
		case "[":
			node, err = p.parseIndexRest(node)
		case ".":
			node, err = p.parseDotRest(node)
		default:
			return node, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseFuncCallRest(funcNode ast.Node) (ast.Node, error) {
	if err := p.goAhead(); err != nil { // skip '('
		return nil, err
	}
	startPos := funcNode.StartPos()
	var args []ast.FuncCallArg
	for !p.scanner.Expect(")") {
		arg, err := p.parseFuncallArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.scanner.Expect(",") {
			if err := p.goAhead(); err != nil {
				return nil, err
			}
		} else if !p.scanner.Expect(")") {
			return nil, p.unexpected("')' and ','")
		}
	}
	if err := p.goAhead(); err != nil { // skip ')'
		return nil, err
	}
	return &ast.FuncCall{FuncRef: funcNode, Args: args, Pos: startPos}, nil
}

func (p *Parser) parseFuncallArg() (ast.FuncCallArg, error) {
	arg, err := p.parseExpression()
	if err != nil {
		return ast.FuncCallArg{}, err
	}
	if p.scanner.Expect(":") {
		v, ok := arg.(*ast.Var)
		if !ok {
			return ast.FuncCallArg{}, p.unexpected("'var'")
		}
		if err := p.goAhead(); err != nil { // skip ':'
			return ast.FuncCallArg{}, err
		}
		argValue, err := p.parseExpression()
		if err != nil {
			return ast.FuncCallArg{}, err
		}
		return ast.FuncCallArg{ArgName: v.Name, Arg: argValue}, nil
	}
	return ast.FuncCallArg{Arg: arg}, nil
}

func (p *Parser) parseIndexRest(left ast.Node) (ast.Node, error) {
	if err := p.goAhead(); err != nil { // skip '['
		return nil, err
	}
	at, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.scanner.Expect("]") {
		return nil, p.unexpected("']'")
	}
	if err := p.goAhead(); err != nil {
		return nil, err
	}
	return &ast.BinOp{Op: "[]", Left: left, Right: at, Pos: left.StartPos()}, nil
}

func (p *Parser) parseDotRest(left ast.Node) (ast.Node, error) {
	if err := p.goAhead(); err != nil { // skip '.'
		return nil, err
	}
	attr, err := p.parseName(nil)
	if err != nil {
		return nil, err
	}
	return &ast.DotOp{Left: left, Attr: attr, Pos: left.StartPos()}, nil
}

func (p *Parser) parseSingleElement() (ast.Node, error) {
	switch p.scanner.Current().Kind {
	case scanner.KindNumber:
		return p.parseNumber()
	case scanner.KindName:
		return p.parseVar()
	case scanner.KindBacktick:
		return p.parseBacktick()
	case scanner.KindString:
		return p.parseString()
	case scanner.KindTemporal:
		return p.parseTemporal()
	case "-":
		return p.parseNeg()
	case "{":
		return p.parseMap()
	case "(":
		return p.parseBracketOrRange()
	case "[":
		return p.parseRangeOrArray()
	case ">", ">=", "<", "<=", "!=", "=":
		return p.parseUnaryTest()
	case scanner.KindKeyword:
		switch p.scanner.Current().Value {
		case "true", "false":
			return p.parseBool()
		case "null":
			return p.parseNull()
		case "if":
			return p.parseIfExpression()
		case "for":
			return p.parseForExpression()
		case "some", "every":
			return p.parseSomeOrEveryExpression()
		case "function":
			return p.parseFunctionDefinition()
		default:
			return nil, p.unexpectedKeyword("true, false, if, for, some, every, function")
		}
	default:
		return nil, p.unexpected("name, number")
	}
}

// parseName greedily collects name, keyword and arithmetic-operator
// tokens, then accepts the longest concatenation that either contains
// no operator or keyword or is bound per the probe, rewinding one token at a time
// otherwise.
func (p *Parser) parseName(stopKeywords []string) (string, error) {
	tokenStack, err := p.collectNameTokens(stopKeywords)
	if err != nil {
		return "", err
	}
	for len(tokenStack) > 0 {
		nameBuffer, foundOp := joinNameTokens(tokenStack)
		if !foundOp || (p.probe != nil && p.probe.HasName(nameBuffer)) {
			return nameBuffer, nil
		}
		last := tokenStack[len(tokenStack)-1]
		tokenStack = tokenStack[:len(tokenStack)-1]
		p.scanner.Rewind(last)
	}
	return "", p.unexpected("names")
}

// parseVarName is parseName without the probe: the collected run is
// taken as-is. Used where a fresh name is being introduced (loop
// variables, context keys) rather than resolved.
func (p *Parser) parseVarName(stopKeywords []string) (string, error) {
	if p.scanner.Expect(scanner.KindBacktick) {
		token := p.scanner.Current()
		if err := p.goAhead(); err != nil {
			return "", err
		}
		return strings.Trim(token.Value, "`"), nil
	}
	tokenStack, err := p.collectNameTokens(stopKeywords)
	if err != nil {
		return "", err
	}
	if len(tokenStack) == 0 {
		return "", p.unexpected("names")
	}
	nameBuffer, _ := joinNameTokens(tokenStack)
	return nameBuffer, nil
}

var nameTokenKinds = []scanner.Kind{scanner.KindName, scanner.KindKeyword, "+", "-", "*", "/"}

func (p *Parser) collectNameTokens(stopKeywords []string) ([]scanner.Token, error) {
	var tokenStack []scanner.Token
	for p.scanner.ExpectKinds(nameTokenKinds...) {
		token := p.scanner.Current()
		if token.Kind == scanner.KindKeyword && contains(stopKeywords, token.Value) {
			break
		}
		tokenStack = append(tokenStack, token)
		if err := p.goAhead(); err != nil {
			return nil, err
		}
	}
	return tokenStack, nil
}

// joinNameTokens rebuilds the source spelling of a token run; a space
// is inserted only where the source had a gap between tokens. A run
// holding anything but plain name tokens — operators, but also
// keywords like "in" or "and" — is only acceptable as an identifier
// when the environment binds it, so it counts as operator-tainted.
func joinNameTokens(tokens []scanner.Token) (string, bool) {
	var b strings.Builder
	foundOp := false
	for i, t := range tokens {
		if t.Kind != scanner.KindName {
			foundOp = true
		}
		if i > 0 && tokens[i-1].Position.Chars+len(tokens[i-1].Value) < t.Position.Chars {
			b.WriteString(" ")
		}
		b.WriteString(t.Value)
	}
	return b.String(), foundOp
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func (p *Parser) parseVar() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	varName, err := p.parseName(nil)
	if err != nil {
		return nil, err
	}
	return &ast.Var{Name: varName, Pos: startPos}, nil
}

func (p *Parser) parseBacktick() (ast.Node, error) {
	token := p.scanner.Current()
	if err := p.goAhead(); err != nil {
		return nil, err
	}
	return &ast.Var{Name: strings.Trim(token.Value, "`"), Quoted: true, Pos: token.Position}, nil
}

func (p *Parser) parseNumber() (ast.Node, error) {
	token := p.scanner.Current()
	if err := p.goAhead(); err != nil {
		return nil, err
	}
	return &ast.NumberNode{Value: token.Value, Pos: token.Position}, nil
}

func (p *Parser) parseNeg() (ast.Node, error) {
	if err := p.goAhead(); err != nil { // skip '-'
		return nil, err
	}
	startPos := p.scanner.Current().Position
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Neg{Value: node, Pos: startPos}, nil
}

func (p *Parser) parseString() (ast.Node, error) {
	token := p.scanner.Current()
	if err := p.goAhead(); err != nil {
		return nil, err
	}
	return &ast.StringNode{Value: token.Value, Pos: token.Position}, nil
}

func (p *Parser) parseTemporal() (ast.Node, error) {
	token := p.scanner.Current()
	if err := p.goAhead(); err != nil {
		return nil, err
	}
	return &ast.TemporalNode{Value: token.Value, Pos: token.Position}, nil
}

func (p *Parser) parseBool() (ast.Node, error) {
	token := p.scanner.Current()
	var value bool
	switch token.Value {
	case "true":
		value = true
	case "false":
		value = false
	default:
		return nil, p.unexpectedKeyword("true, false")
	}
	if err := p.goAhead(); err != nil {
		return nil, err
	}
	return &ast.BoolNode{Value: value, Pos: token.Position}, nil
}

func (p *Parser) parseNull() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	if err := p.goAhead(); err != nil { // skip 'null'
		return nil, err
	}
	return &ast.NullNode{Pos: startPos}, nil
}

func (p *Parser) parseMap() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	if err := p.goAhead(); err != nil { // skip '{'
		return nil, err
	}
	var items []ast.MapItem
	for !p.scanner.Expect("}") {
		mapKey, err := p.parseMapKey()
		if err != nil {
			return nil, err
		}
		if !p.scanner.Expect(":") {
			return nil, p.unexpected("':'")
		}
		if err := p.goAhead(); err != nil { // skip ':'
			return nil, err
		}
		exp, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, ast.MapItem{Name: mapKey, Value: exp})

		if p.scanner.Expect(",") {
			if err := p.goAhead(); err != nil {
				return nil, err
			}
		} else if !p.scanner.Expect("}") {
			return nil, p.unexpected("'}', ','")
		}
	}
	if err := p.goAhead(); err != nil { // skip '}'
		return nil, err
	}
	return &ast.MapNode{Items: items, Pos: startPos}, nil
}

func (p *Parser) parseMapKey() (ast.Node, error) {
	if p.scanner.ExpectKinds(scanner.KindName, scanner.KindBacktick) {
		startPos := p.scanner.Current().Position
		name, err := p.parseVarName(nil)
		if err != nil {
			return nil, err
		}
		return &ast.Ident{Name: name, Pos: startPos}, nil
	}
	if p.scanner.Expect(scanner.KindString) {
		return p.parseString()
	}
	return nil, p.unexpected("name or string")
}

func (p *Parser) parseRangeGivenStart(startOpen bool, startExp ast.Node, startPos scanner.Position) (ast.Node, error) {
	endExp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var endOpen bool
	switch {
	case p.scanner.Expect(")"):
		endOpen = true
	case p.scanner.Expect("]"):
		endOpen = false
	default:
		return nil, p.unexpected("')', ']'")
	}
	if err := p.goAhead(); err != nil { // skip the closing bracket
		return nil, err
	}
	return &ast.RangeNode{
		StartOpen: startOpen,
		Start:     startExp,
		EndOpen:   endOpen,
		End:       endExp,
		Pos:       startPos,
	}, nil
}

func (p *Parser) parseBracketOrRange() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	if err := p.goAhead(); err != nil { // skip '('
		return nil, err
	}
	aexp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	switch {
	case p.scanner.Expect(".."):
		if err := p.goAhead(); err != nil { // skip '..'
			return nil, err
		}
		return p.parseRangeGivenStart(true, aexp, startPos)
	case p.scanner.Expect(")"):
		if err := p.goAhead(); err != nil { // skip ')'
			return nil, err
		}
		return aexp, nil
	case p.scanner.Expect(","):
		return p.parseExprListGivenFirst(aexp, startPos)
	default:
		return nil, p.unexpected("')', ',', '..'")
	}
}

func (p *Parser) parseRangeOrArray() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	if err := p.goAhead(); err != nil { // skip '['
		return nil, err
	}
	if p.scanner.Expect("]") {
		if err := p.goAhead(); err != nil {
			return nil, err
		}
		return &ast.ArrayNode{Pos: startPos}, nil
	}
	aexp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.scanner.ExpectKinds(",", "]") {
		return p.parseArrayGivenFirst(aexp, startPos)
	}
	if !p.scanner.Expect("..") {
		return nil, p.unexpected("'..'")
	}
	if err := p.goAhead(); err != nil { // skip '..'
		return nil, err
	}
	return p.parseRangeGivenStart(false, aexp, startPos)
}

func (p *Parser) parseExprListGivenFirst(first ast.Node, startPos scanner.Position) (ast.Node, error) {
	elements := []ast.Node{first}
	for p.scanner.Expect(",") {
		if err := p.goAhead(); err != nil { // skip ','
			return nil, err
		}
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	if !p.scanner.Expect(")") {
		return nil, p.unexpected("')'")
	}
	if err := p.goAhead(); err != nil { // skip ')'
		return nil, err
	}
	if len(elements) == 1 {
		return elements[0], nil
	}
	return &ast.ExprList{Exprs: elements, Pos: startPos}, nil
}

func (p *Parser) parseArrayGivenFirst(first ast.Node, startPos scanner.Position) (ast.Node, error) {
	elements := []ast.Node{first}
	for p.scanner.Expect(",") {
		if err := p.goAhead(); err != nil { // skip ','
			return nil, err
		}
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	if !p.scanner.Expect("]") {
		return nil, p.unexpected("']'")
	}
	if err := p.goAhead(); err != nil { // skip ']'
		return nil, err
	}
	return &ast.ArrayNode{Elements: elements, Pos: startPos}, nil
}

func (p *Parser) parseIfExpression() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	if err := p.goAhead(); err != nil { // skip 'if'
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.scanner.ExpectKeyword("then") {
		return nil, p.unexpectedKeyword("then")
	}
	if err := p.goAhead(); err != nil { // skip 'then'
		return nil, err
	}
	thenBranch, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.scanner.ExpectKeyword("else") {
		return nil, p.unexpectedKeyword("else")
	}
	if err := p.goAhead(); err != nil { // skip 'else'
		return nil, err
	}
	elseBranch, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.IfExpr{
		Condition:  cond,
		ThenBranch: thenBranch,
		ElseBranch: elseBranch,
		Pos:        startPos,
	}, nil
}

func (p *Parser) parseForExpression() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	if err := p.goAhead(); err != nil { // skip 'for'
		return nil, err
	}
	varName, err := p.parseVarName([]string{"in", "for"})
	if err != nil {
		return nil, err
	}
	if !p.scanner.ExpectKeyword("in") {
		return nil, p.unexpectedKeyword("in")
	}
	if err := p.goAhead(); err != nil { // skip 'in'
		return nil, err
	}
	listExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.scanner.Expect(",") {
		// chained clauses desugar into a nested for
		returnExpr, err := p.parseForExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ForExpr{VarName: varName, ListExpr: listExpr, ReturnExpr: returnExpr, Pos: startPos}, nil
	}
	if !p.scanner.ExpectKeyword("return") {
		return nil, p.unexpectedKeyword("return")
	}
	if err := p.goAhead(); err != nil { // skip 'return'
		return nil, err
	}
	returnExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ForExpr{VarName: varName, ListExpr: listExpr, ReturnExpr: returnExpr, Pos: startPos}, nil
}

func (p *Parser) parseSomeOrEveryExpression() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	cmd := p.scanner.Current().Value
	if err := p.goAhead(); err != nil { // skip 'some' | 'every'
		return nil, err
	}
	varName, err := p.parseVarName([]string{"in"})
	if err != nil {
		return nil, err
	}
	if !p.scanner.ExpectKeyword("in") {
		return nil, p.unexpectedKeyword("in")
	}
	if err := p.goAhead(); err != nil { // skip 'in'
		return nil, err
	}
	listExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.scanner.ExpectKeyword("satisfies") {
		return nil, p.unexpectedKeyword("satisfies")
	}
	if err := p.goAhead(); err != nil { // skip 'satisfies'
		return nil, err
	}
	filterExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if cmd == "some" {
		return &ast.SomeExpr{VarName: varName, ListExpr: listExpr, FilterExpr: filterExpr, Pos: startPos}, nil
	}
	return &ast.EveryExpr{VarName: varName, ListExpr: listExpr, FilterExpr: filterExpr, Pos: startPos}, nil
}

func (p *Parser) parseFunctionDefinition() (ast.Node, error) {
	startPos := p.scanner.Current().Position
	if err := p.goAhead(); err != nil { // skip 'function'
		return nil, err
	}
	if !p.scanner.Expect("(") {
		return nil, p.unexpected("'('")
	}
	if err := p.goAhead(); err != nil { // skip '('
		return nil, err
	}
	var argNames []string
	for !p.scanner.Expect(")") {
		argName, err := p.parseName(nil)
		if err != nil {
			return nil, err
		}
		argNames = append(argNames, argName)
		if dup, found := findDuplicate(argNames); found {
			return nil, newParseError(
				fmt.Sprintf("function has duplication arg name `%s`", dup),
				p.scanner.Current().Position)
		}
		if p.scanner.Expect(",") {
			if err := p.goAhead(); err != nil { // skip ','
				return nil, err
			}
		} else if !p.scanner.Expect(")") {
			return nil, p.unexpected("')'")
		}
	}
	if err := p.goAhead(); err != nil { // skip ')'
		return nil, err
	}
	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	endPos := p.scanner.Current().Position
	funcCode := p.scanner.TextRange(startPos.Chars, endPos.Chars)
	return &ast.FuncDef{ArgNames: argNames, Body: exp, Code: funcCode, Pos: startPos}, nil
}

func findDuplicate(names []string) (string, bool) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return name, true
		}
		seen[name] = true
	}
	return "", false
}
