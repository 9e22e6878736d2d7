package log

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
)

// RootHandler wraps an slog.Handler and shortens absolute paths under
// the configured roots. A path inside a root is rewritten to start at the
// root's base name, so "/abs/site/dist/a.html" becomes "dist/a.html".
type RootHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// roots are sorted longest first so nested roots match before parents.
	roots []root
}

type root struct {
	abs    string // absolute path without trailing separator
	prefix string // abs plus separator
	name   string // base name of abs
}

// NewRootHandler creates a RootHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. Roots that cannot
// be made absolute, and the filesystem root itself, are skipped.
func NewRootHandler(handler slog.Handler, roots ...string) *RootHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}

	rs := make([]root, 0, len(roots))
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil || filepath.Dir(abs) == abs {
			continue
		}
		rs = append(rs, root{
			abs:    abs,
			prefix: abs + string(filepath.Separator),
			name:   filepath.Base(abs),
		})
	}
	slices.SortFunc(rs, func(a, b root) int {
		return len(b.abs) - len(a.abs)
	})

	return &RootHandler{handler: handler, roots: rs}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RootHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it on.
func (h *RootHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, h.shorten(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RootHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &RootHandler{handler: h.handler.WithAttrs(rewritten), roots: h.roots}
}

// WithGroup returns a new handler with the given group name.
func (h *RootHandler) WithGroup(name string) slog.Handler {
	return &RootHandler{handler: h.handler.WithGroup(name), roots: h.roots}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
// Error values are flattened to their message; string slices are
// rewritten element by element.
func (h *RootHandler) rewriteAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	case slog.KindString:
		return slog.String(a.Key, h.shorten(a.Value.String()))
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case error:
			return slog.String(a.Key, h.shorten(v.Error()))
		case []string:
			shortened := make([]string, len(v))
			for i, s := range v {
				shortened[i] = h.shorten(s)
			}
			return slog.Any(a.Key, shortened)
		}
	}
	return a
}

// shorten rewrites every path in s that lies under a root. Text already
// rewritten is never scanned again.
func (h *RootHandler) shorten(s string) string {
	for _, r := range h.roots {
		if s == r.abs {
			return r.name
		}
	}

	var sb strings.Builder
	for {
		i, r := h.nextRoot(s)
		if r == nil {
			sb.WriteString(s)
			return sb.String()
		}
		rest := s[i+len(r.prefix):]
		end := strings.IndexAny(rest, " \t\n\"")
		if end < 0 {
			end = len(rest)
		}
		sb.WriteString(s[:i])
		sb.WriteString(r.name)
		sb.WriteString("/")
		sb.WriteString(filepath.ToSlash(rest[:end]))
		s = rest[end:]
	}
}

// nextRoot returns the earliest occurrence of a root prefix in s. On a tie
// the longer root wins, since roots are sorted longest first.
func (h *RootHandler) nextRoot(s string) (int, *root) {
	best, found := -1, (*root)(nil)
	for k := range h.roots {
		i := strings.Index(s, h.roots[k].prefix)
		if i >= 0 && (found == nil || i < best) {
			best, found = i, &h.roots[k]
		}
	}
	return best, found
}

// NewLogger creates the text logger used by the CLI.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//   - roots: output directories whose absolute paths are shortened
func NewLogger(w io.Writer, verbose bool, roots ...string) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewRootHandler(slog.NewTextHandler(w, opts), roots...))
}
