package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	for _, s := range []string{
		"A", "z", "1", "001", "PHC101", "LCL_301", "101a", "323-a", "4)b",
		"101a.iii", "2a.i", "7b-x", "12_c:iv", "123456789012345678901234567890",
	} {
		n, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, n.String())
	}
}

func TestParse_Decomposition(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want Numbering
	}{
		{"letter", "A", Numbering{Letter: "A"}},
		{"padded number", "001", Numbering{Number: "001"}},
		{"leader", "PHC101", Numbering{Leader: "PHC", Number: "101"}},
		{"lower", "101a", Numbering{Number: "101", Lower: "a"}},
		{"punctuated lower", "101.a", Numbering{Number: "101", Punc0: ".", Lower: "a"}},
		{"roman", "101a.iii", Numbering{Number: "101", Lower: "a", Punc1: ".", Roman: "iii"}},
		{"roman over letter", "Q7b-v", Numbering{Leader: "Q", Number: "7", Lower: "b", Punc1: "-", Roman: "v"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, *n)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, s := range []string{"", "AB", "hello", "1 2", "12ab", "1a.xi", "~~1", "~5", "~PHC5a", "^1", "<", "1a.", "#1"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrFormat, s)
		assert.False(t, IsNumbering(s), s)
	}
}

func TestText_Silent(t *testing.T) {
	n, err := Parse("000")
	require.NoError(t, err)
	n.Silent = true
	assert.Equal(t, "", n.Text())
	assert.Equal(t, "~000", n.String())

	require.NoError(t, n.Increment("^1"))
	assert.Equal(t, "~001", n.String())

	n.Silent = false
	assert.Equal(t, "001", n.Text())
}

func TestIncrement(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		cmd  string
		want string
	}{
		{"padded", "001", "^1", "002"},
		{"padding is a minimum width", "999", "^1", "1000"},
		{"padding kept past carry", "009", "^1", "010"},
		{"no padding added", "9", "^1", "10"},
		{"step by digit", "1", "^5", "6"},
		{"leader kept", "PHC101", "^1", "PHC102"},
		{"number clears lower", "004a", "^1", "005"},
		{"number clears roman", "4a.ii", "^1", "5"},
		{"lower from nothing", "4", "^a", "4a"},
		{"lower step", "323a", "^a", "323b"},
		{"lower offset", "323a", "^b", "323c"},
		{"lower clears roman", "3a.iv", "^a", "3b"},
		{"lower keeps punctuation", "3-a", "^a", "3-b"},
		{"roman from nothing", "3a", "^i", "3a.i"},
		{"roman step", "3a.i", "^i", "3a.ii"},
		{"roman v directive steps once", "3a.iii", "^v", "3a.iv"},
		{"roman wraps", "3a-x", "^x", "3a-i"},
		{"letter offset A", "A", "^A", "B"},
		{"letter offset B", "A", "^B", "C"},
		{"lowercase letter", "c", "^A", "d"},
		{"combined", "1", "^1ai", "2a.i"},
		{"combined number then lower", "000", "^1a", "001a"},
		{"carry past uint64", "18446744073709551615", "^1", "18446744073709551616"},
		{"long number", "1234567890123456789012345", "^9", "1234567890123456789012354"},
		{"long padded number", "0000000000000000000000099", "^1", "0000000000000000000000100"},
		{"carry through nines", "9999999999999999999999999", "^1", "10000000000000000000000000"},
		{"several digit steps", "8", "^99", "26"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.raw)
			require.NoError(t, err)
			require.NoError(t, n.Increment(tc.cmd))
			assert.Equal(t, tc.want, n.String())
		})
	}
}

func TestIncrement_Errors(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		cmd  string
	}{
		{"roman needs lower", "004", "^i"},
		{"roman on letter", "A", "^i"},
		{"no directives", "1", "^"},
		{"missing caret", "1", "1"},
		{"uppercase on number", "1", "^A"},
		{"lowercase on letter", "A", "^a"},
		{"punctuation", "1", "^."},
		{"number on letter", "A", "^1"},
		{"letter past Z", "Y", "^C"},
		{"lower past z", "1y", "^c"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.raw)
			require.NoError(t, err)
			assert.ErrorIs(t, n.Increment(tc.cmd), ErrInvalidIncrement)
		})
	}
}

func TestCopy_Independent(t *testing.T) {
	n, err := Parse("101a")
	require.NoError(t, err)
	c := n.Copy()
	require.NoError(t, c.Increment("^1"))
	assert.Equal(t, "101a", n.String())
	assert.Equal(t, "102", c.String())
}
