// Package logging configures the shared slog output of relink and rimport.
// The default handler keeps output script-friendly: bare messages with no
// timestamp or level prefix, DEBUG through WARN on stdout and ERROR and
// above on stderr. ALWAYS-level records (summaries, timing) bypass the
// verbosity threshold entirely.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// LevelAlways sits above slog.LevelError and is always emitted, regardless
// of the configured verbosity.
const LevelAlways = slog.Level(12)

// Level maps the verbosity flags to a slog level; quiet takes precedence
// over verbose when both are set.
func Level(quiet bool, verbose bool) slog.Level {
	if quiet {
		return slog.LevelWarn
	}
	if verbose {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

// Setup installs the process-wide default logger. Pretty mode swaps in the
// tint handler (timestamps, colors) for interactive runs.
func Setup(level slog.Level, pretty bool) {
	if pretty {
		slog.SetDefault(slog.New(
			tint.NewHandler(os.Stdout, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			}),
		))

		return
	}

	slog.SetDefault(slog.New(NewScriptHandler(os.Stdout, os.Stderr, level)))
}

// Always logs msg at LevelAlways through the default logger.
func Always(msg string, args ...any) {
	slog.Default().Log(context.Background(), LevelAlways, msg, args...)
}

// ScriptHandler is a slog.Handler writing bare "msg key=value" lines,
// splitting records between two writers by level.
type ScriptHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	errOut io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func NewScriptHandler(out io.Writer, errOut io.Writer, level slog.Level) *ScriptHandler {
	return &ScriptHandler{
		mu:     &sync.Mutex{},
		out:    out,
		errOut: errOut,
		level:  level,
	}
}

func (h *ScriptHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level >= LevelAlways {
		return true
	}

	return level >= h.level
}

func (h *ScriptHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Message)

	for _, attr := range h.attrs {
		h.appendAttr(&sb, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.appendAttr(&sb, attr)

		return true
	})
	sb.WriteString("\n")

	// ERROR and CRITICAL-like records go to stderr; everything else,
	// ALWAYS included, stays on stdout for scripts to consume.
	w := h.out
	if r.Level >= slog.LevelError && r.Level < LevelAlways {
		w = h.errOut
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(w, sb.String())

	return err
}

func (h *ScriptHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	groups := make([]string, len(h.groups))
	copy(groups, h.groups)

	newH := &ScriptHandler{
		mu:     h.mu,
		out:    h.out,
		errOut: h.errOut,
		level:  h.level,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
		groups: groups,
	}

	return newH
}

func (h *ScriptHandler) WithGroup(name string) slog.Handler {
	attrs := make([]slog.Attr, len(h.attrs))
	copy(attrs, h.attrs)

	newH := &ScriptHandler{
		mu:     h.mu,
		out:    h.out,
		errOut: h.errOut,
		level:  h.level,
		attrs:  attrs,
		groups: append(append([]string{}, h.groups...), name),
	}

	return newH
}

func (h *ScriptHandler) appendAttr(sb *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}

	key := attr.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	fmt.Fprintf(sb, " %s=%v", key, attr.Value.Resolve())
}
