package label

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robertkrimen/otto"
	"go.uber.org/zap"
)

// ErrScript is wrapped by every transform script failure.
var ErrScript = errors.New("transform script")

// Transform rewrites a rendered number with a user supplied JavaScript
// function, e.g. `n => n.toUpperCase()`. A Transform is not safe for
// concurrent use.
type Transform struct {
	source string
	vm     *otto.Otto
}

// NewTransform compiles src. Arrow functions are rewritten as an ES5 function
// called f because otto only runs ES5; anything else must define f itself.
func NewTransform(src string) (*Transform, error) {
	function := src
	if i := strings.Index(src, "=>"); i >= 0 {
		arg := strings.Trim(strings.TrimSpace(src[:i]), "()")
		body := strings.TrimSpace(src[i+2:])
		if strings.HasPrefix(body, "{") {
			function = "function f(" + arg + ")" + body + ";"
		} else {
			function = "function f(" + arg + "){ return " + body + " };"
		}
	}
	logger.Debug("compile transform", zap.String("source", src), zap.String("function", function))

	vm := otto.New()
	if _, err := vm.Run(function); err != nil {
		return nil, fmt.Errorf("%w: defining %q: %v", ErrScript, src, err)
	}
	if v, err := vm.Get("f"); err != nil || !v.IsFunction() {
		return nil, fmt.Errorf("%w: %q does not define a function f", ErrScript, src)
	}
	return &Transform{source: src, vm: vm}, nil
}

// Apply runs the script on number and returns its result as a string.
func (t *Transform) Apply(number string) (string, error) {
	if err := t.vm.Set("d", number); err != nil {
		return "", fmt.Errorf("%w: couldn't set d: %v", ErrScript, err)
	}
	value, err := t.vm.Run("f(d)")
	if err != nil {
		return "", fmt.Errorf("%w: running %q on %q: %v", ErrScript, t.source, number, err)
	}
	if value.IsUndefined() || value.IsNull() {
		return "", nil
	}
	s, err := value.ToString()
	if err != nil {
		return "", fmt.Errorf("%w: couldn't export the result: %v", ErrScript, err)
	}
	return s, nil
}
