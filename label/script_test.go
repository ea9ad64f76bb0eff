package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	testCases := []struct {
		name   string
		script string
		in     string
		want   string
	}{
		{"arrow", "n => n.toUpperCase()", "101a", "101A"},
		{"parenthesised arrow", "(n) => 'Q' + n", "7", "Q7"},
		{"block arrow", "n => { return n + ')'; }", "3", "3)"},
		{"plain function", "function f(x) { return '[' + x + ']'; }", "4", "[4]"},
		{"undefined is empty", "n => undefined", "4", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := NewTransform(tc.script)
			require.NoError(t, err)
			got, err := tr.Apply(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTransform_Errors(t *testing.T) {
	_, err := NewTransform("n => (")
	assert.ErrorIs(t, err, ErrScript)

	_, err = NewTransform("var g = 1;")
	assert.ErrorIs(t, err, ErrScript)

	tr, err := NewTransform("n => n.nope()")
	require.NoError(t, err)
	_, err = tr.Apply("1")
	assert.ErrorIs(t, err, ErrScript)
}

func TestSplice_Transform(t *testing.T) {
	tr, err := NewTransform("n => n + '.'")
	require.NoError(t, err)

	s := &Splicer{Transform: tr}
	r, err := s.Splice("12", "Age")
	require.NoError(t, err)
	assert.Equal(t, "12. Age", r.Text)

	// blank numbers never reach the script
	r, err = s.Splice("", "Age")
	require.NoError(t, err)
	assert.Equal(t, "Age", r.Text)
}
