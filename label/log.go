package label

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger routes debug output to l. A nil l silences it.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
