package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// itemType identifies what a token asks the interpreter to do.
type itemType int

const (
	itemError     itemType = iota // token could not be classified; err holds why
	itemBlank                     // empty cell
	itemLiteral                   // fixed numbering, starts a series
	itemIncrement                 // ^...
	itemLookback                  // <N^...
	itemSticky                    // #NUM
	itemSilent                    // ~NUM
	itemCountTo                   // >...
	itemResume                    // *...
)

var itemNames = []string{
	"error",
	"blank",
	"literal",
	"increment",
	"lookback",
	"sticky",
	"silent",
	"count-to",
	"resume",
}

func (t itemType) String() string {
	if int(t) < len(itemNames) {
		return itemNames[t]
	}
	return "item(" + strconv.Itoa(int(t)) + ")"
}

const (
	eof          = -1
	controlChars = "^<#~>*"
	digits       = "0123456789"
)

// item is a classified token.
type item struct {
	typ  itemType
	val  string // the whole token
	rest string // token without its control character
	back int    // lookback distance
	incr string // trailing increment command, "^..." or empty
	err  error
}

func (i item) String() string {
	if i.typ == itemError {
		return fmt.Sprintf("%s(%q: %v)", i.typ, i.val, i.err)
	}
	return fmt.Sprintf("%s(%q)", i.typ, i.val)
}

// classify decides up front what token is, so dispatch can switch on the tag.
func classify(token string) item {
	it := item{val: token}
	if token == "" {
		it.typ = itemBlank
		return it
	}
	r, w := utf8.DecodeRuneInString(token)
	if !strings.ContainsRune(controlChars, r) {
		it.typ = itemLiteral
		it.rest = token
		return it
	}
	it.rest = token[w:]
	switch r {
	case '^':
		it.typ = itemIncrement
		it.incr = token
	case '<':
		return lexLookback(it)
	case '#':
		it.typ = itemSticky
	case '~':
		it.typ = itemSilent
	case '>':
		it.typ = itemCountTo
	case '*':
		it.typ = itemResume
	}
	return it
}

// lexLookback scans the "<" digits? ("^" incr+)? form.
func lexLookback(it item) item {
	s := &scanner{input: it.val}
	s.next() // '<'
	start := s.pos
	s.acceptRun(digits)
	it.back = 1
	if s.pos > start {
		n, err := strconv.Atoi(s.input[start:s.pos])
		if err != nil {
			return errorItem(it, fmt.Errorf("%w: lookback count %q: %v", ErrUnrecognizedToken, s.input[start:s.pos], err))
		}
		it.back = n
	}
	switch s.peek() {
	case eof:
	case '^':
		it.incr = s.input[s.pos:]
	default:
		return errorItem(it, fmt.Errorf("%w: %q, expected <, <N or <N^...", ErrUnrecognizedToken, it.val))
	}
	it.typ = itemLookback
	return it
}

func errorItem(it item, err error) item {
	it.typ = itemError
	it.err = err
	return it
}

// scanner walks a single token rune by rune.
type scanner struct {
	input string
	pos   int
	width int
}

// next returns the next rune in the input.
func (s *scanner) next() rune {
	if s.pos >= len(s.input) {
		s.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(s.input[s.pos:])
	s.width = w
	s.pos += w
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (s *scanner) backup() {
	s.pos -= s.width
}

// peek returns but does not consume the next rune in the input.
func (s *scanner) peek() rune {
	r := s.next()
	s.backup()
	return r
}

// acceptRun consumes a run of runes from the valid set.
func (s *scanner) acceptRun(valid string) {
	for strings.ContainsRune(valid, s.next()) {
	}
	s.backup()
}

// KindOf names what token asks for: "blank", "literal", "increment",
// "lookback", "sticky", "silent", "count-to", "resume" or "error".
func KindOf(token string) string {
	return classify(strings.TrimSpace(token)).typ.String()
}
