// Package notify is the user-visible notification channel. Server errors and
// connectivity failures are pushed here; ordinary 4xx results are left to the
// calling command to present.
package notify

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Notifier receives messages that must reach the user regardless of which
// command triggered them
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Console writes notifications to a terminal stream and mirrors them to the
// structured log
type Console struct {
	Out io.Writer
	Log *zap.Logger
}

func NewConsole(out io.Writer, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{Out: out, Log: log}
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.Out, msg)
	c.Log.Info(msg)
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.Out, "error: "+msg)
	c.Log.Error(msg)
}

// Nop discards every notification; useful as a default in tests
type Nop struct{}

func (Nop) Info(string)  {}
func (Nop) Error(string) {}
