package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Options configura o logger
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text ou json
	Output io.Writer
}

// SlogLogger implementa Logger sobre log/slog
type SlogLogger struct {
	l *slog.Logger
}

// NewLogger cria uma nova instância de Logger em stdout, nível info, formato texto
func NewLogger() Logger {
	return New(Options{})
}

// New cria um Logger com as opções informadas
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(out, handlerOpts)
	} else {
		h = slog.NewTextHandler(out, handlerOpts)
	}
	return &SlogLogger{l: slog.New(h)}
}

// NewNop cria um Logger que descarta tudo. Útil em testes.
func NewNop() Logger {
	return &SlogLogger{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel converte o nível textual; desconhecido vira info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With retorna um Logger que sempre inclui os pares chave/valor informados
func (l *SlogLogger) With(keysAndValues ...interface{}) Logger {
	return &SlogLogger{l: l.l.With(keysAndValues...)}
}

// Info registra uma mensagem de informação
func (l *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.l.Info(msg, keysAndValues...)
}

// Error registra uma mensagem de erro
func (l *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.l.Error(msg, keysAndValues...)
}

// Debug registra uma mensagem de debug
func (l *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.l.Debug(msg, keysAndValues...)
}

// Warn registra uma mensagem de aviso
func (l *SlogLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.l.Warn(msg, keysAndValues...)
}
