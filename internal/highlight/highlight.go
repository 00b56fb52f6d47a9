// Package highlight implements the syntax scanner for C-like sources.
// Scanning is stateless: one call classifies one line given the lexer
// state carried out of the previous line.
package highlight

import (
	"strings"
	"unicode"
)

// Token is the highlight class assigned to a single character.
type Token byte

const (
	Normal Token = iota
	Keyword
	Keyword2
	Type
	String
	Comment
	Preprocessor
	Digit // numeric literals and escape sequences inside strings
	Symbol
	Symbol2

	tokenCount
)

// Count is the number of token classes.
const Count = int(tokenCount)

// Carry is the lexer state passed from one line to the next. A line's
// scan starts as if it is already inside whatever state the previous
// line left open.
type Carry struct {
	// CommentOpen reports an unterminated /* ... */ block.
	CommentOpen bool
	// StringOpen holds the delimiter of a string literal continued by a
	// trailing escape at end of line, or 0 if none.
	StringOpen rune
}

// Whitespace is the character set word motions and the scanner treat as blank.
const Whitespace = " \f\n\r\t\v"

const (
	symbols  = "+-*/{}<>="
	symbols2 = "()[];,.&|!%^~?:"
)

var keywords = map[string]struct{}{
	"auto": {}, "break": {}, "case": {}, "const": {}, "continue": {},
	"default": {}, "do": {}, "else": {}, "enum": {}, "extern": {},
	"for": {}, "goto": {}, "if": {}, "inline": {}, "register": {},
	"restrict": {}, "return": {}, "sizeof": {}, "static": {}, "struct": {},
	"switch": {}, "typedef": {}, "union": {}, "volatile": {}, "while": {},
}

var literals = map[string]struct{}{
	"true": {}, "false": {}, "NULL": {}, "nullptr": {},
}

var types = map[string]struct{}{
	"bool": {}, "char": {}, "double": {}, "float": {}, "int": {},
	"long": {}, "short": {}, "signed": {}, "unsigned": {}, "void": {},
	"size_t": {}, "ssize_t": {}, "ptrdiff_t": {}, "wchar_t": {},
	"int8_t": {}, "int16_t": {}, "int32_t": {}, "int64_t": {},
	"uint8_t": {}, "uint16_t": {}, "uint32_t": {}, "uint64_t": {},
	"intptr_t": {}, "uintptr_t": {},
}

// IsWhitespace reports whether r belongs to the Whitespace set.
func IsWhitespace(r rune) bool {
	return strings.ContainsRune(Whitespace, r)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Classify resolves an identifier against the keyword, literal and type
// tables, in that order.
func Classify(word string) Token {
	if _, ok := keywords[word]; ok {
		return Keyword
	}
	if _, ok := literals[word]; ok {
		return Keyword2
	}
	if _, ok := types[word]; ok {
		return Type
	}
	return Normal
}

// Scan classifies every character of text and returns the state left
// open at end of line. The returned slice has exactly len(text) entries.
func Scan(text []rune, in Carry) ([]Token, Carry) {
	hl := make([]Token, len(text))
	comment := in.CommentOpen
	str := in.StringOpen
	escaped := false
	directive := false
	dirStart := 0
	includeArm := false // directive was #include, a "..." or <...> target may follow
	incClose := rune(0) // closing delimiter while inside an include target

	for i := 0; i < len(text); i++ {
		c := text[i]

		if comment {
			hl[i] = Comment
			if c == '*' && i+1 < len(text) && text[i+1] == '/' {
				hl[i+1] = Comment
				i++
				comment = false
			}
			continue
		}

		if str != 0 {
			if escaped {
				hl[i] = Digit
				escaped = false
				continue
			}
			if c == '\\' {
				hl[i] = Digit
				escaped = true
				continue
			}
			hl[i] = String
			if c == str {
				str = 0
			}
			continue
		}

		if incClose != 0 {
			hl[i] = String
			if c == incClose {
				incClose = 0
			}
			continue
		}

		if directive {
			if IsWhitespace(c) {
				hl[i] = Normal
				if string(text[dirStart:i]) == "include" {
					includeArm = true
				}
				directive = false
			} else {
				hl[i] = Preprocessor
			}
			continue
		}

		if includeArm {
			if c == '"' || c == '<' {
				hl[i] = String
				incClose = c
				if c == '<' {
					incClose = '>'
				}
				includeArm = false
				continue
			}
			if IsWhitespace(c) {
				hl[i] = Normal
				continue
			}
			includeArm = false
		}

		switch {
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			for ; i < len(text); i++ {
				hl[i] = Comment
			}
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			hl[i] = Comment
			hl[i+1] = Comment
			i++
			comment = true
		case c == '"' || c == '\'':
			hl[i] = String
			str = c
		case c == '#':
			hl[i] = Preprocessor
			directive = true
			dirStart = i + 1
		case isIdentStart(c):
			j := i
			for j < len(text) && isIdentPart(text[j]) {
				j++
			}
			tok := Classify(string(text[i:j]))
			for k := i; k < j; k++ {
				hl[k] = tok
			}
			i = j - 1
		case unicode.IsDigit(c):
			hl[i] = Digit
		case strings.ContainsRune(symbols, c):
			hl[i] = Symbol
		case strings.ContainsRune(symbols2, c):
			hl[i] = Symbol2
		default:
			hl[i] = Normal
		}
	}

	out := Carry{CommentOpen: comment}
	if str != 0 && escaped {
		out.StringOpen = str
	}
	return hl, out
}
