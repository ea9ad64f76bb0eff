// Package label merges rendered numbers into existing label text and reports
// what happened to each row.
package label

import (
	"strings"

	"github.com/MattSimmons1/seqlabel/numbering"
	"go.uber.org/zap"
)

// Change says how a label's number prefix was affected by a splice.
type Change int

const (
	Unchanged Change = iota
	Added
	Changed
	Removed
)

var changeNames = []string{"unchanged", "added", "changed", "removed"}

func (c Change) String() string {
	if c >= 0 && int(c) < len(changeNames) {
		return changeNames[c]
	}
	return "unknown"
}

// MarshalText lets results be emitted as JSON with readable change names.
func (c Change) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Result is the outcome of splicing one row.
type Result struct {
	Text     string `json:"text"`
	Change   Change `json:"change"`
	Previous string `json:"previous,omitempty"` // number prefix found in the original text
}

// Flagged reports whether the row should be highlighted for review.
func (r Result) Flagged() bool {
	return r.Change != Unchanged
}

// Splicer prepends numbers to label text, replacing a number that is already
// there.
type Splicer struct {
	Separator    string     // between number and text; defaults to a space
	KeepExisting bool       // a blank number leaves an existing prefix alone
	Transform    *Transform // optional rewrite of non-empty numbers
}

func (s *Splicer) separator() string {
	if s.Separator == "" {
		return " "
	}
	return s.Separator
}

// Split separates a leading number from text. The number is the text up to
// the first separator when it parses as a numbering; otherwise number is
// empty and rest is text unchanged.
func (s *Splicer) Split(text string) (number, rest string) {
	sep := s.separator()
	head, tail, found := strings.Cut(text, sep)
	if !numbering.IsNumbering(head) {
		return "", text
	}
	if !found {
		return head, ""
	}
	return head, strings.TrimLeft(tail, " ")
}

// Splice merges number into text.
func (s *Splicer) Splice(number, text string) (Result, error) {
	existing, rest := s.Split(text)
	if number != "" && s.Transform != nil {
		var err error
		if number, err = s.Transform.Apply(number); err != nil {
			return Result{}, err
		}
	}

	r := Result{Previous: existing}
	switch {
	case number == "" && existing == "":
		r.Text = text
	case number == "":
		if s.KeepExisting {
			r.Text = text
		} else {
			r.Text, r.Change = rest, Removed
		}
	case number == existing:
		r.Text = text
	default:
		r.Text = s.join(number, rest)
		r.Change = Added
		if existing != "" {
			r.Change = Changed
		}
	}
	if r.Flagged() {
		logger.Debug("label", zap.Stringer("change", r.Change), zap.String("previous", existing), zap.String("number", number))
	}
	return r, nil
}

func (s *Splicer) join(number, rest string) string {
	if rest == "" {
		return number
	}
	return number + s.separator() + rest
}

// SpliceAll splices numbers into labels row by row. Missing labels count as
// empty text and extra labels are passed through as if their number were blank.
func (s *Splicer) SpliceAll(numbers, labels []string) ([]Result, error) {
	n := max(len(numbers), len(labels))
	out := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		var number, text string
		if i < len(numbers) {
			number = numbers[i]
		}
		if i < len(labels) {
			text = labels[i]
		}
		r, err := s.Splice(number, text)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
