package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Grammar nodes for declaration files. Every node that contributes verbatim
// text to the output (attributes, visibility, types, default bodies) carries
// Pos/EndPos so the builder can slice the original source instead of trying
// to re-render token streams.

// fileNode is the root production: a sequence of declarations.
type fileNode struct {
	Decls []declNode `parser:"@@*"`
}

// declNode is one top-level declaration. Doc comments, attributes, and
// visibility are shared prefix syntax; the keyword decides which body
// production applies.
type declNode struct {
	Pos lexer.Position

	Docs  []string   `parser:"@DocComment*"`
	Attrs []attrNode `parser:"@@*"`
	Vis   *visNode   `parser:"@@?"`
	Body  declBody   `parser:"@@"`
}

type declBody struct {
	Interface *interfaceBody `parser:"'interface' @@"`
	Union     *unionBody     `parser:"| 'enum' @@"`
}

// interfaceBody is the part of an interface declaration after the keyword.
type interfaceBody struct {
	Pos lexer.Position

	Name    string       `parser:"@Ident"`
	Bounds  []boundNode  `parser:"(Colon @@ (Plus @@)*)?"`
	Methods []methodNode `parser:"LBrace @@* RBrace"`
}

// boundNode is one bound in an interface's bound list: either a lifetime
// or a (possibly path-qualified) supertrait name.
type boundNode struct {
	Pos lexer.Position

	Lifetime string   `parser:"@Lifetime"`
	Path     []string `parser:"| @Ident (PathSep @Ident)*"`
}

// methodNode is one method declaration inside an interface body.
type methodNode struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Docs   []string        `parser:"@DocComment*"`
	Attrs  []attrNode      `parser:"@@*"`
	Async  bool            `parser:"@'async'?"`
	Name   string          `parser:"'fn' @Ident"`
	First  *firstParamNode `parser:"LParen @@?"`
	Rest   []paramNode     `parser:"(Comma @@)* Comma? RParen"`
	Return *typeNode       `parser:"(Arrow @@)?"`
	Body   *bodyNode       `parser:"(@@ | Semi)"`
}

// firstParamNode is the first element of a parameter list. It is normally
// the receiver, but a receiverless declaration puts an ordinary parameter
// here; the builder tells the two apart.
type firstParamNode struct {
	Receiver *receiverNode `parser:"@@"`
	Param    *paramNode    `parser:"| @@"`
}

// receiverNode covers self, mut self, &self, and &mut self.
type receiverNode struct {
	Pos lexer.Position

	Ref  bool `parser:"@Amp?"`
	Mut  bool `parser:"@'mut'?"`
	Self bool `parser:"@'self'"`
}

// paramNode is a named parameter with its type text.
type paramNode struct {
	Pos lexer.Position

	Name string   `parser:"@Ident Colon"`
	Type typeNode `parser:"@@"`
}

// typeNode is a type expression. Types are opaque: the parser only tracks
// balanced (), [], and <> groups so it knows where the type ends, and the
// builder recovers the exact text from the span. The impl alternative is
// the one construct the engine must recognize inside a type.
type typeNode struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Elems []typeElem `parser:"@@+"`
}

type typeElem struct {
	Paren   *parenGroup   `parser:"@@"`
	Bracket *bracketGroup `parser:"| @@"`
	Angle   *angleGroup   `parser:"| @@"`
	Impl    *implType     `parser:"| @@"`
	Token   string        `parser:"| @~(Comma | LParen | RParen | LBracket | RBracket | LAngle | RAngle | LBrace | RBrace | Semi)"`
}

// implType marks an "impl Interface" parameter type.
type implType struct {
	Name string `parser:"'impl' @Ident"`
}

// parenGroup, bracketGroup, and angleGroup are balanced delimiter runs.
// Inside a group, commas and the other delimiters' contents are plain
// tokens; only the matching closer ends the group.
type parenGroup struct {
	Elems []groupElem `parser:"LParen @@* RParen"`
}

type bracketGroup struct {
	Elems []groupElem `parser:"LBracket @@* RBracket"`
}

type angleGroup struct {
	Elems []groupElem `parser:"LAngle @@* RAngle"`
}

type groupElem struct {
	Paren   *parenGroup   `parser:"@@"`
	Bracket *bracketGroup `parser:"| @@"`
	Angle   *angleGroup   `parser:"| @@"`
	Token   string        `parser:"| @~(LParen | RParen | LBracket | RBracket | LAngle | RAngle)"`
}

// bodyNode is a default method body: a brace-balanced token run that is
// never interpreted. Braces inside strings, chars, and comments are not
// brace tokens, so they cannot unbalance the run.
type bodyNode struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Elems []bodyElem `parser:"LBrace @@* RBrace"`
}

type bodyElem struct {
	Sub    *bodyNode `parser:"@@"`
	Tokens []string  `parser:"| @~(LBrace | RBrace)+"`
}

// attrNode is one #[...] attribute, bracket-balanced and captured verbatim.
type attrNode struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Elems []attrElem `parser:"AttrOpen @@* RBracket"`
}

type attrElem struct {
	Sub    *bracketGroup `parser:"@@"`
	Tokens []string      `parser:"| @~(LBracket | RBracket)+"`
}

// visNode is a visibility marker: pub with an optional scope group such as
// pub(crate) or pub(in some::path).
type visNode struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Pub   bool        `parser:"@'pub'"`
	Scope *parenGroup `parser:"@@?"`
}

// unionBody is the part of a union declaration after the keyword.
type unionBody struct {
	Pos lexer.Position

	Name     string        `parser:"@Ident LBrace"`
	Variants []variantNode `parser:"(@@ (Comma @@)* Comma?)? RBrace"`
}

// variantNode is one union variant. The payload list is parsed as a comma
// separated sequence so that arity violations can be reported with the
// actual count instead of a bare syntax error.
type variantNode struct {
	Pos lexer.Position

	Docs  []string   `parser:"@DocComment*"`
	Attrs []attrNode `parser:"@@*"`
	Name  string     `parser:"@Ident"`
	Types []typeNode `parser:"(LParen (@@ (Comma @@)*)? RParen)?"`
}

// span returns the verbatim source text between two positions. End positions
// can land past skipped trivia, and no captured fragment legitimately ends in
// whitespace, so trailing trivia is trimmed off the slice.
func span(source string, pos, end lexer.Position) string {
	if end.Offset > len(source) {
		end.Offset = len(source)
	}
	if pos.Offset < 0 || pos.Offset >= end.Offset {
		return ""
	}
	return strings.TrimRight(source[pos.Offset:end.Offset], " \t\r\n")
}

func (n *attrNode) raw(source string) string {
	return span(source, n.Pos, n.EndPos)
}

func (n *typeNode) raw(source string) string {
	return span(source, n.Pos, n.EndPos)
}

func (n *bodyNode) raw(source string) string {
	return span(source, n.Pos, n.EndPos)
}

func (n *visNode) raw(source string) string {
	return span(source, n.Pos, n.EndPos)
}
