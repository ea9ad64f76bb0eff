package numbering

import (
	"fmt"
	"iter"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"go.uber.org/zap"
)

// Series is one run of numberings started by a fixed value and extended by
// increments and lookbacks.
type Series struct {
	ID      int
	Key     string // String() of the first member
	Members []*Numbering
}

// State is the series bookkeeping of a Context. Series ids are handed out in
// creation order starting at 1; 0 means "no series".
type State struct {
	table    *linkedhashmap.Map // int -> *Series, in creation order
	current  int
	previous int
	lastID   int
}

// NewState returns an empty State.
func NewState() *State {
	return &State{table: linkedhashmap.New()}
}

func (st *State) series(id int) (*Series, bool) {
	if id == 0 {
		return nil, false
	}
	v, ok := st.table.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Series), true
}

// Start registers n as the first member of a new series and makes it current.
// The series that was current becomes the previous one.
func (st *State) Start(n *Numbering) *Series {
	st.lastID++
	s := &Series{ID: st.lastID, Key: n.String(), Members: []*Numbering{n}}
	st.table.Put(s.ID, s)
	st.previous = st.current
	st.current = s.ID
	return s
}

// Current returns the active series.
func (st *State) Current() (*Series, error) {
	s, ok := st.series(st.current)
	if !ok {
		return nil, fmt.Errorf("%w: start one with a fixed value first", ErrNoSeries)
	}
	return s, nil
}

// Add appends n to the active series.
func (st *State) Add(n *Numbering) error {
	s, err := st.Current()
	if err != nil {
		return err
	}
	s.Members = append(s.Members, n)
	return nil
}

// Swap exchanges the current and previous series.
func (st *State) Swap() error {
	if _, ok := st.series(st.previous); !ok {
		return fmt.Errorf("%w: nothing to resume", ErrNoSeries)
	}
	st.current, st.previous = st.previous, st.current
	return nil
}

// Lookback returns the member back positions from the end of the active series.
// A back of 1 is the last member.
func (st *State) Lookback(back int) (*Numbering, error) {
	s, err := st.Current()
	if err != nil {
		return nil, err
	}
	idx := len(s.Members) - back
	if back < 1 || idx < 0 {
		return nil, fmt.Errorf("%w: <%d on series %q of length %d", ErrLookbackRange, back, s.Key, len(s.Members))
	}
	return s.Members[idx], nil
}

// Context interprets a stream of tokens, one per row. A Context is not safe
// for concurrent use; give every independent stream its own.
type Context struct {
	state    *State
	stream   []string
	numbers  []*Numbering
	stickies []*Numbering
}

// NewContext returns a Context ready for its first token.
func NewContext() *Context {
	return &Context{state: NewState()}
}

// Next consumes one token. Surrounding whitespace is ignored, but Stream keeps
// the token as given. A blank token produces a nil entry in Numbers.
func (c *Context) Next(token string) error {
	c.stream = append(c.stream, token)

	it := classify(strings.TrimSpace(token))
	n, err := c.dispatch(it)
	if err != nil {
		logger.Debug("token rejected", zap.Stringer("item", it), zap.Error(err))
		return err
	}
	c.numbers = append(c.numbers, n)
	if n != nil {
		logger.Debug("token", zap.Stringer("item", it), zap.Stringer("numbering", n))
	}
	return nil
}

// Run feeds tokens in order and stops at the first failure, which is returned
// as a *TokenError.
func (c *Context) Run(tokens []string) error {
	for _, t := range tokens {
		if err := c.Next(t); err != nil {
			return &TokenError{Row: len(c.stream) - 1, Token: t, Err: err}
		}
	}
	return nil
}

func (c *Context) dispatch(it item) (*Numbering, error) {
	switch it.typ {
	case itemError:
		return nil, it.err
	case itemBlank:
		return nil, nil
	case itemLiteral:
		n, err := Parse(it.rest)
		if err != nil {
			return nil, err
		}
		c.state.Start(n)
		return n, nil
	case itemSilent:
		n, err := Parse(it.rest)
		if err != nil {
			return nil, err
		}
		n.Silent = true
		c.state.Start(n)
		return n, nil
	case itemSticky:
		n, err := Parse(it.rest)
		if err != nil {
			return nil, err
		}
		c.stickies = append(c.stickies, n)
		return n, nil
	case itemIncrement:
		last, err := c.state.Lookback(1)
		if err != nil {
			return nil, err
		}
		return c.extend(last, it.incr)
	case itemLookback:
		prev, err := c.state.Lookback(it.back)
		if err != nil {
			return nil, err
		}
		return c.extend(prev, it.incr)
	case itemCountTo:
		return nil, fmt.Errorf("%w: count up to (%q)", ErrUnsupported, it.val)
	case itemResume:
		next := classify(it.rest)
		if next.typ != itemIncrement && next.typ != itemLookback {
			return nil, fmt.Errorf("%w: resume a named series (%q)", ErrUnsupported, it.val)
		}
		if err := c.state.Swap(); err != nil {
			return nil, err
		}
		return c.dispatch(next)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnrecognizedToken, it.val)
}

// extend appends a copy of from, stepped by incr when given, to the current series.
func (c *Context) extend(from *Numbering, incr string) (*Numbering, error) {
	n := from.Copy()
	n.Silent = false
	if incr != "" {
		if err := n.Increment(incr); err != nil {
			return nil, err
		}
	}
	if err := c.state.Add(n); err != nil {
		return nil, err
	}
	return n, nil
}

// copyAll copies every non-nil member so callers cannot reach the values
// that later lookbacks read.
func copyAll(ns []*Numbering) []*Numbering {
	out := make([]*Numbering, len(ns))
	for i, n := range ns {
		if n != nil {
			out[i] = n.Copy()
		}
	}
	return out
}

// Numbers returns a copy of one entry per accepted token; nil for blanks.
func (c *Context) Numbers() []*Numbering {
	return copyAll(c.numbers)
}

// Stream returns every token seen, as given to Next.
func (c *Context) Stream() []string {
	return append([]string(nil), c.stream...)
}

// Stickies returns copies of the sticky (#) numbers in the order they appeared.
func (c *Context) Stickies() []*Numbering {
	return copyAll(c.stickies)
}

// Series returns a snapshot of every series in creation order.
func (c *Context) Series() []Series {
	out := make([]Series, 0, c.state.table.Size())
	for _, v := range c.state.table.Values() {
		s := v.(*Series)
		out = append(out, Series{ID: s.ID, Key: s.Key, Members: copyAll(s.Members)})
	}
	return out
}

// Strings yields the rendered label for every entry of Numbers: the empty
// string for blanks and silent numbers.
func (c *Context) Strings() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range c.numbers {
			s := ""
			if n != nil {
				s = n.Text()
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Filtered is Strings without the blank entries.
func (c *Context) Filtered() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range c.numbers {
			if n == nil {
				continue
			}
			if !yield(n.Text()) {
				return
			}
		}
	}
}

// Render runs tokens through a fresh Context and returns the rendered labels.
func Render(tokens []string) ([]string, error) {
	c := NewContext()
	if err := c.Run(tokens); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(tokens))
	for s := range c.Strings() {
		out = append(out, s)
	}
	return out, nil
}
