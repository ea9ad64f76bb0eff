//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/MattSimmons1/seqlabel/numbering"
)

func main() {
	js.Global().Get("wasm").Set("seqlabel", js.FuncOf(WASMConvert))

	select {} // don't exit
}

// WASMConvert takes an array of tokens and returns {labels: [...]} or {error: "..."}.
func WASMConvert(this js.Value, p []js.Value) interface{} {
	if len(p) < 1 || p[0].Type() != js.TypeObject {
		return map[string]interface{}{"error": "expected an array of tokens"}
	}
	tokens := make([]string, p[0].Length())
	for i := range tokens {
		tokens[i] = p[0].Index(i).String()
	}

	rendered, err := numbering.Render(tokens)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	labels := make([]interface{}, len(rendered))
	for i, s := range rendered {
		labels[i] = s
	}
	return map[string]interface{}{"labels": labels}
}
