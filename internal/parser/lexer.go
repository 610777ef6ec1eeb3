package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// declLexer tokenizes declaration files. Attributes, default bodies, and
// type text are reconstructed verbatim from token spans, so the lexer only
// needs to keep strings, chars, and comments atomic and the structural
// delimiters distinct; everything else falls through to Punct.
//
// Rule order matters: DocComment before Comment, PathSep before Colon,
// Arrow before Punct, Char before Lifetime.
var declLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "DocComment", Pattern: `///[^\n]*`},
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "AttrOpen", Pattern: `#\[`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\])'`},
	{Name: "Lifetime", Pattern: `'[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9][0-9_]*(\.[0-9_]+)?`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "PathSep", Pattern: `::`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "LAngle", Pattern: `<`},
	{Name: "RAngle", Pattern: `>`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Semi", Pattern: `;`},
	{Name: "Amp", Pattern: `&`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Punct", Pattern: `[^\s]`},
})
