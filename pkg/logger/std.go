package logger

import (
	"log"
	"strings"
)

// infoWriter adapts a Logger to io.Writer so stdlib consumers that expect
// a *log.Logger can be fed through a Logger backend at Info level.
type infoWriter struct {
	log Logger
}

func (w *infoWriter) Write(p []byte) (int, error) {
	w.log.Info("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// ToStdLogger returns a *log.Logger that forwards every line to l at Info
// level. Timestamps are omitted since the backend adds its own framing.
func ToStdLogger(l Logger) *log.Logger {
	return log.New(&infoWriter{log: l}, "", 0)
}
