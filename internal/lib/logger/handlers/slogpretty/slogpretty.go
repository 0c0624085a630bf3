package slogpretty

import (
	"context"
	"encoding/json"
	"github.com/fatih/color"
	"io"
	stdLog "log"
	"log/slog"
)

const timeLayout = "[15:04:05.000]"

type PrettyHandlerOptions struct {
	SlogOpts *slog.HandlerOptions
}

type PrettyHandler struct {
	opts PrettyHandlerOptions
	slog.Handler
	l      *stdLog.Logger
	attrs  []slog.Attr
	groups []string
}

func (opts PrettyHandlerOptions) NewPrettyHandler(out io.Writer) *PrettyHandler {
	h := &PrettyHandler{
		opts:    opts,
		Handler: slog.NewJSONHandler(out, opts.SlogOpts),
		l:       stdLog.New(out, "", 0),
	}

	return h
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.BlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	fields := make(map[string]interface{}, r.NumAttrs()+len(h.attrs))

	for _, a := range h.attrs {
		put(fields, a)
	}

	target := fields
	for _, g := range h.groups {
		target = subgroup(target, g)
	}

	r.Attrs(func(a slog.Attr) bool {
		put(target, a)

		return true
	})

	var b []byte
	var err error

	if len(fields) > 0 {
		b, err = json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
	}

	timeStr := r.Time.Format(timeLayout)
	msg := color.CyanString(r.Message)

	h.l.Println(
		timeStr,
		level,
		msg,
		color.WhiteString(string(b)),
	)

	return nil
}

// WithAttrs stores attrs already nested under the open groups.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	nested := attrs
	for i := len(h.groups) - 1; i >= 0; i-- {
		nested = []slog.Attr{{Key: h.groups[i], Value: slog.GroupValue(nested...)}}
	}

	return &PrettyHandler{
		opts:    h.opts,
		Handler: h.Handler.WithAttrs(attrs),
		l:       h.l,
		attrs:   append(append([]slog.Attr{}, h.attrs...), nested...),
		groups:  h.groups,
	}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &PrettyHandler{
		opts:    h.opts,
		Handler: h.Handler.WithGroup(name),
		l:       h.l,
		attrs:   h.attrs,
		groups:  append(append([]string{}, h.groups...), name),
	}
}

func put(dst map[string]interface{}, a slog.Attr) {
	v := a.Value.Resolve()

	if v.Kind() != slog.KindGroup {
		if a.Key != "" {
			dst[a.Key] = v.Any()
		}
		return
	}

	group := v.Group()
	if len(group) == 0 {
		return
	}

	// An unnamed group is inlined.
	if a.Key != "" {
		dst = subgroup(dst, a.Key)
	}

	for _, ga := range group {
		put(dst, ga)
	}
}

func subgroup(dst map[string]interface{}, key string) map[string]interface{} {
	if m, ok := dst[key].(map[string]interface{}); ok {
		return m
	}

	m := make(map[string]interface{})
	dst[key] = m

	return m
}
