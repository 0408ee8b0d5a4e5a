// Package clipboard delivers share card text to where the user can paste it.
//
// [OSC52] writes an OSC 52 escape sequence to the terminal, which sets the
// system clipboard in most modern terminals, including over SSH and inside
// tmux or screen. [Writer] writes the plain text to any io.Writer, which is
// what headless runs and tests use.
package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
)

// OSC52 copies text by emitting an OSC 52 sequence to a terminal.
type OSC52 struct {
	mu  sync.Mutex
	out io.Writer
	env func(string) string
}

// NewOSC52 returns a sink that writes sequences to out, usually os.Stderr
// so that stdout stays clean for piping.
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out, env: os.Getenv}
}

// Write copies text to the system clipboard.
func (c *OSC52) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq := osc52.New(text)
	switch {
	case c.env("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.env("TERM"), "screen"):
		seq = seq.Screen()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("clipboard: write osc52 sequence: %w", err)
	}
	return nil
}

// Writer copies text by writing it, followed by a newline, to an io.Writer.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter returns a sink that writes to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write writes text and a trailing newline.
func (w *Writer) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.out, text+"\n"); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
