// Package variables locates bracketed placeholders such as [input] in prompt
// text. Offsets are byte offsets into the scanned string.
package variables

import (
	"iter"
	"strings"
)

const (
	openBracket  = '['
	closeBracket = ']'
)

// Token is one placeholder occurrence. End is exclusive and Text includes
// both brackets.
type Token struct {
	Start int
	End   int
	Text  string
}

// Name returns the placeholder name without brackets.
func (t Token) Name() string {
	if len(t.Text) < 2 {
		return ""
	}
	return t.Text[1 : len(t.Text)-1]
}

// Len returns the byte length of the token span.
func (t Token) Len() int {
	return t.End - t.Start
}

// Scan yields the placeholders of text from left to right. Brackets do not
// nest: an opening bracket seen before the closing one restarts the token, so
// "[a[b]c]" yields only "[b]". Empty brackets and an unmatched "[" yield
// nothing. The sequence can be ranged over any number of times.
func Scan(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		pos := 0
		for pos < len(text) {
			rel := strings.IndexByte(text[pos:], openBracket)
			if rel < 0 {
				return
			}
			start := pos + rel
			end := -1
			i := start + 1
			for ; i < len(text); i++ {
				if text[i] == openBracket {
					break
				}
				if text[i] == closeBracket {
					end = i + 1
					break
				}
			}
			switch {
			case end < 0 && i < len(text):
				// restart at the inner "["
				pos = i
			case end < 0:
				return
			case end-start == 2:
				pos = end
			default:
				if !yield(Token{Start: start, End: end, Text: text[start:end]}) {
					return
				}
				pos = end
			}
		}
	}
}

// All collects every placeholder in text.
func All(text string) []Token {
	var tokens []Token
	for tok := range Scan(text) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Next returns the first placeholder starting strictly after offset after.
// Pass -1 to include a placeholder at offset 0.
func Next(text string, after int) (Token, bool) {
	for tok := range Scan(text) {
		if tok.Start > after {
			return tok, true
		}
	}
	return Token{}, false
}

// Names returns the distinct placeholder names in order of first appearance.
func Names(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for tok := range Scan(text) {
		name := tok.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
