package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
	TypeCatalog LogType = "CAT"
)

type Options struct {
	Level   slog.Leveler
	Writer  io.Writer
	NoColor bool
}

type CustomHandler struct {
	opts   Options
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(opts Options) *CustomHandler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	return &CustomHandler{
		opts: opts,
		mu:   &sync.Mutex{},
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CustomHandler{
		opts:   h.opts,
		mu:     h.mu,
		attrs:  append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
		groups: h.groups,
	}
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	return &CustomHandler{
		opts:   h.opts,
		mu:     h.mu,
		attrs:  h.attrs,
		groups: append(h.groups[:len(h.groups):len(h.groups)], name),
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	fields := collectFields(&r)

	message := r.Message
	if r.Level >= slog.LevelError {
		location := fields.errorLocation
		if location == "" {
			location = sourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if fields.errorDetails != "" {
			message = fmt.Sprintf("%s: %s", message, fields.errorDetails)
		}
	}
	if fields.name != "" {
		message = fmt.Sprintf("%s [%s]", message, fields.name)
	}
	if fields.status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, fields.status)
	}
	if fields.took > 0 {
		message = fmt.Sprintf("%s (took %dms)", message, fields.took.Milliseconds())
	}

	var attrsStr strings.Builder
	prefix := strings.Join(h.groups, ".")
	writeAttr := func(a slog.Attr) {
		if isInternalAttr(a.Key) {
			return
		}
		key := a.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		fmt.Fprintf(&attrsStr, " %s=%v", key, a.Value)
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	if r.Level < slog.LevelError {
		r.Attrs(func(a slog.Attr) bool {
			writeAttr(a)
			return true
		})
	}

	white, reset := colorWhite, colorReset
	if h.opts.NoColor {
		white, reset, levelColor = "", "", ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.opts.Writer, "%s[NRDB] [%s] [%s%s%s] [%s] %s%s%s\n",
		white,
		ts.Format("15:04:05"),
		levelColor,
		levelText,
		white,
		fields.logType,
		message,
		attrsStr.String(),
		reset,
	)
	return err
}

type recordFields struct {
	logType       LogType
	status        string
	name          string
	errorDetails  string
	errorLocation string
	took          time.Duration
}

func collectFields(r *slog.Record) recordFields {
	f := recordFields{logType: TypeSystem}
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "type":
			f.logType = parseLogType(a.Value.String())
		case "status":
			f.status = a.Value.String()
		case "name":
			f.name = a.Value.String()
		case "error":
			f.errorDetails = fmt.Sprintf("%v", a.Value.Any())
		case "error_location":
			f.errorLocation = a.Value.String()
		case "took":
			if a.Value.Kind() == slog.KindDuration {
				f.took = a.Value.Duration()
			}
		}
		return true
	})
	return f
}

func parseLogType(v string) LogType {
	switch v {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "error":
		return TypeError
	case "catalog":
		return TypeCatalog
	default:
		return TypeSystem
	}
}

// skippedMessages are chatty third-party debug lines.
var skippedMessages = []string{
	"new request",
	"new response",
}

func shouldSkipLog(r *slog.Record) bool {
	if r.Level > slog.LevelDebug {
		return false
	}
	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "status", "error", "error_location", "took":
		return true
	}
	return false
}
