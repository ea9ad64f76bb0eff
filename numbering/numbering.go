// Package numbering implements the label numbering mini-language: a value type
// for one decomposed label ("001", "PHC102a", "101a.iii") and a stream
// interpreter that turns terse control tokens into sequential labels.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	silentMarker = "~"

	// a leader is anything that is not a digit, space or control character
	leaderClass = `[^\s\d~<>@^#*]*`
	puncClass   = `[:\-)._]`
	romanAlt    = `i|ii|iii|iv|v|vi|vii|viii|ix|x`
)

var (
	reLetter      = regexp.MustCompile(`^[a-zA-Z]$`)
	reNumber      = regexp.MustCompile(`^(` + leaderClass + `)(\d+)$`)
	reExtendedLow = regexp.MustCompile(`^(` + leaderClass + `)(\d+)(` + puncClass + `?)([a-z])$`)
	reExtendedRom = regexp.MustCompile(`^(` + leaderClass + `)(\d+)(` + puncClass + `?)([a-z])(` + puncClass + `)(` + romanAlt + `)$`)
)

var romanNumerals = []string{"i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x"}

// Numbering is one decomposed label. Either Letter is set, or Number is set
// together with the optional Leader, Lower and Roman parts.
type Numbering struct {
	Letter string // bare single letter label, e.g. "A"
	Leader string // prefix before the number, e.g. "PHC"
	Number string // digits; leading zeros are significant
	Punc0  string // between Number and Lower
	Lower  string // single lowercase letter
	Punc1  string // between Lower and Roman
	Roman  string // i..x
	Silent bool   // renders as the empty string
}

// Parse decomposes token into a Numbering. The silent marker is not part of
// any shape; callers strip it and set Silent themselves. Tokens that match none
// of the recognised shapes fail with ErrFormat.
func Parse(token string) (*Numbering, error) {
	n := &Numbering{}
	if reLetter.MatchString(token) {
		n.Letter = token
		return n, nil
	}
	if m := reNumber.FindStringSubmatch(token); m != nil {
		n.Leader, n.Number = m[1], m[2]
		return n, nil
	}
	// the roman form is the more specific one, so it goes first
	if m := reExtendedRom.FindStringSubmatch(token); m != nil {
		n.Leader, n.Number, n.Punc0, n.Lower, n.Punc1, n.Roman = m[1], m[2], m[3], m[4], m[5], m[6]
		return n, nil
	}
	if m := reExtendedLow.FindStringSubmatch(token); m != nil {
		n.Leader, n.Number, n.Punc0, n.Lower = m[1], m[2], m[3], m[4]
		return n, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, token)
}

// IsNumbering reports whether s parses as a Numbering.
func IsNumbering(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Copy returns an independent copy of n.
func (n *Numbering) Copy() *Numbering {
	c := *n
	return &c
}

// String returns the canonical form, with the silent marker when n is silent.
func (n *Numbering) String() string {
	if n.Silent {
		return silentMarker + n.body()
	}
	return n.body()
}

// Text returns the label as it should be emitted; empty when n is silent.
func (n *Numbering) Text() string {
	if n.Silent {
		return ""
	}
	return n.body()
}

func (n *Numbering) body() string {
	var b strings.Builder
	b.WriteString(n.Letter)
	b.WriteString(n.Leader)
	b.WriteString(n.Number)
	if n.Lower != "" {
		b.WriteString(n.Punc0)
		b.WriteString(n.Lower)
		if n.Roman != "" {
			b.WriteString(n.Punc1)
			b.WriteString(n.Roman)
		}
	}
	return b.String()
}

// Increment applies cmd, a "^" followed by one or more directives, left to
// right. Directives:
//
//	digit  step Number by that amount and drop Lower and Roman
//	i v x  step Roman by one numeral; needs Lower
//	A-Z    step Letter; "A" is +1, "B" is +2 and so on
//	a-z    step Lower with the same offsets and drop Roman
//
// n is left partly modified when a later directive fails.
func (n *Numbering) Increment(cmd string) error {
	if !strings.HasPrefix(cmd, "^") || len(cmd) == 1 {
		return fmt.Errorf("%w: %q, expected ^ followed by A, 1, a or i", ErrInvalidIncrement, cmd)
	}
	for _, d := range cmd[1:] {
		var err error
		switch {
		case d >= '0' && d <= '9':
			err = n.stepNumber(int(d - '0'))
		case d == 'i' || d == 'v' || d == 'x':
			err = n.stepRoman()
		case d >= 'A' && d <= 'Z' && n.Letter != "":
			err = n.stepLetter(int(d-'A') + 1)
		case d >= 'a' && d <= 'z' && n.Letter == "":
			err = n.stepLower(int(d-'a') + 1)
		default:
			err = fmt.Errorf("%w: %q in %q, expected A, 1, a or i", ErrInvalidIncrement, d, cmd)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (n *Numbering) stepNumber(by int) error {
	if n.Number == "" {
		return fmt.Errorf("%w: %q has no number to step", ErrInvalidIncrement, n.String())
	}
	n.Number = addDigits(n.Number, by)
	n.Lower = ""
	n.Roman = ""
	return nil
}

// addDigits adds by to the decimal string digits, carrying as far as needed.
// The result is never shorter than digits, so zero padding survives and a
// carry out of the top digit grows the number.
func addDigits(digits string, by int) string {
	out := []byte(digits)
	carry := by
	for i := len(out) - 1; i >= 0 && carry > 0; i-- {
		d := int(out[i]-'0') + carry
		out[i] = byte('0' + d%10)
		carry = d / 10
	}
	if carry > 0 {
		return strconv.Itoa(carry) + string(out)
	}
	return string(out)
}

func (n *Numbering) stepRoman() error {
	if n.Lower == "" {
		return fmt.Errorf("%w: %q cannot have a roman numeral without a lowercase letter", ErrInvalidIncrement, n.String())
	}
	idx := -1
	for i, r := range romanNumerals {
		if r == n.Roman {
			idx = i
			break
		}
	}
	n.Roman = romanNumerals[(idx+1)%len(romanNumerals)]
	if n.Punc1 == "" {
		n.Punc1 = "."
	}
	return nil
}

func (n *Numbering) stepLetter(by int) error {
	base, last := 'A', 'Z'
	r := rune(n.Letter[0])
	if r >= 'a' && r <= 'z' {
		base, last = 'a', 'z'
	}
	next := r + rune(by)
	if next < base || next > last {
		return fmt.Errorf("%w: %q stepped by %d runs past %q", ErrInvalidIncrement, n.Letter, by, last)
	}
	n.Letter = string(next)
	return nil
}

func (n *Numbering) stepLower(by int) error {
	if n.Number == "" {
		return fmt.Errorf("%w: %q cannot have a lowercase letter without a number", ErrInvalidIncrement, n.String())
	}
	r := rune('a' - 1)
	if n.Lower != "" {
		r = rune(n.Lower[0])
	}
	next := r + rune(by)
	if next > 'z' {
		return fmt.Errorf("%w: %q stepped by %d runs past 'z'", ErrInvalidIncrement, n.Lower, by)
	}
	n.Lower = string(next)
	n.Roman = ""
	return nil
}
